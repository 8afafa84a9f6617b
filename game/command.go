package game

import "fmt"

// Command is a discrete player input, independent of where it came from.
type Command int

const (
	MoveLeft Command = iota + 1
	MoveRight
	SoftDrop
	HardDrop
	RotateCW
	RotateCCW
	TogglePause
	Restart
)

var commandNames = map[Command]string{
	MoveLeft:    "move_left",
	MoveRight:   "move_right",
	SoftDrop:    "soft_drop",
	HardDrop:    "hard_drop",
	RotateCW:    "rotate_cw",
	RotateCCW:   "rotate_ccw",
	TogglePause: "toggle_pause",
	Restart:     "restart",
}

// AllCommands lists every command in declaration order.
var AllCommands = []Command{MoveLeft, MoveRight, SoftDrop, HardDrop, RotateCW, RotateCCW, TogglePause, Restart}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand maps a command name such as "rotate_cw" to its Command.
func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", name)
}

// Commands buffers input collected during a frame so it can be applied in
// arrival order before the frame's tick.
type Commands struct {
	queue []Command
}

// NewCommands returns an empty buffer.
func NewCommands() *Commands {
	return &Commands{}
}

// Push queues a command.
func (c *Commands) Push(cmd Command) {
	c.queue = append(c.queue, cmd)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.queue)
}

// Flush applies all queued commands to the loop in order and resets the buffer.
func (c *Commands) Flush(loop *Loop) {
	for _, cmd := range c.queue {
		loop.Apply(cmd)
	}
	c.queue = c.queue[:0]
}
