package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/plus3/tetra/sim"
)

type Report struct {
	// Configuration
	Games    int
	Seed     uint64
	MaxSteps int
	Mode     string

	// Results
	Finished   int
	TotalSteps int
	TotalTime  time.Duration
	StepTime   Stats
	Scores     IntStats
	Lines      IntStats
	Pieces     IntStats
	Clears     [5]int64
	BestSeed   uint64
	MemStart   runtime.MemStats
	MemEnd     runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

type IntStats struct {
	Min, Max, Total int
	Avg             float64
	n               int
}

func (s *IntStats) Add(v int) {
	if s.n == 0 || v < s.Min {
		s.Min = v
	}
	if s.n == 0 || v > s.Max {
		s.Max = v
	}
	s.n++
	s.Total += v
	s.Avg = float64(s.Total) / float64(s.n)
}

// Add folds one game into the report.
func (r *Report) Add(res sim.Result) {
	if res.Finished {
		r.Finished++
	}
	if r.Scores.n == 0 || res.Summary.Score > r.Scores.Max {
		r.BestSeed = res.Seed
	}
	r.Scores.Add(res.Summary.Score)
	r.Lines.Add(res.Summary.Lines)
	r.Pieces.Add(res.Summary.Pieces)
	r.TotalSteps += res.Steps
	r.StepTime.Samples = append(r.StepTime.Samples, res.StepTimes...)
	for rows, n := range res.Stats.Clears {
		if rows > 0 && rows < len(r.Clears) {
			r.Clears[rows] += n
		}
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Simulation Report

## Configuration
- **Games:** {{num .Games}}
- **First Seed:** {{.Seed}}
- **Step Cap:** {{num .MaxSteps}}
- **Mode:** {{.Mode}}

## Results
- **Finished Games:** {{num .Finished}} / {{num .Games}}
- **Total Steps:** {{num .TotalSteps}}
- **Total Time:** {{.TotalTime}}
- **Score:** avg {{float .Scores.Avg}}, min {{num .Scores.Min}}, max {{num .Scores.Max}} (seed {{.BestSeed}})
- **Lines:** avg {{float .Lines.Avg}}, total {{num .Lines.Total}}
- **Pieces:** avg {{float .Pieces.Avg}}, total {{num .Pieces.Total}}
- **Step Time:**
  - **Avg:** {{.StepTime.Avg}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}

## Line Clears
| rows | count |
|---|---|
{{- range $rows, $n := .Clears}}{{if $rows}}
| {{$rows}} | {{num64 $n}} |{{end}}{{end}}

## Memory Usage
- Heap Alloc:  {{num64 .MemStart.HeapAlloc}} -> {{num64 .MemEnd.HeapAlloc}} bytes
- Total Alloc: {{num64 (bsub .MemEnd.TotalAlloc .MemStart.TotalAlloc)}} bytes during the run
- Num GC:      {{usub .MemEnd.NumGC .MemStart.NumGC}}
`

	p := message.NewPrinter(language.English)
	fm := template.FuncMap{
		"num": func(v int) string {
			return p.Sprintf("%d", v)
		},
		"num64": func(v any) string {
			return p.Sprintf("%d", v)
		},
		"float": func(v float64) string {
			return p.Sprintf("%.1f", v)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
