package debugui

import (
	"fmt"
	"reflect"
	"sync"
	"time"
)

// FieldInfo describes one exported struct field.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	IsStruct  bool
}

// FieldCache memoizes the exported fields of struct types.
type FieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewFieldCache() *FieldCache {
	return &FieldCache{fields: make(map[reflect.Type][]FieldInfo)}
}

// Fields returns the exported fields of t, or nil if t is not a struct.
func (fc *FieldCache) Fields(t reflect.Type) []FieldInfo {
	fc.mu.RLock()
	cached, ok := fc.fields[t]
	fc.mu.RUnlock()
	if ok {
		return cached
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if cached, ok := fc.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			ft := f.Type
			isPointer := ft.Kind() == reflect.Ptr
			if isPointer {
				ft = ft.Elem()
			}
			fields = append(fields, FieldInfo{
				Name:      f.Name,
				Type:      ft,
				Index:     i,
				IsPointer: isPointer,
				IsStruct:  ft.Kind() == reflect.Struct,
			})
		}
	}
	fc.fields[t] = fields
	return fields
}

var fieldCache = NewFieldCache()

var (
	durationType = reflect.TypeOf(time.Duration(0))
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// Row is one line of the inspector: a field path and its formatted value.
type Row struct {
	Depth int
	Name  string
	Value string
	// Group marks a nested struct whose fields follow at Depth+1.
	Group bool
}

// Inspect flattens v into rows. Durations and Stringers are shown with
// String, nested structs are expanded and nil pointers read "nil".
func Inspect(v any) []Row {
	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	var rows []Row
	inspect(val, 0, &rows)
	return rows
}

func inspect(val reflect.Value, depth int, rows *[]Row) {
	for _, f := range fieldCache.Fields(val.Type()) {
		fv := val.Field(f.Index)
		if f.IsPointer {
			if fv.IsNil() {
				*rows = append(*rows, Row{Depth: depth, Name: f.Name, Value: "nil"})
				continue
			}
			fv = fv.Elem()
		}
		if f.IsStruct && !fv.Type().Implements(stringerType) {
			*rows = append(*rows, Row{Depth: depth, Name: f.Name, Group: true})
			inspect(fv, depth+1, rows)
			continue
		}
		*rows = append(*rows, Row{Depth: depth, Name: f.Name, Value: formatValue(fv)})
	}
}

func formatValue(v reflect.Value) string {
	if v.Type() == durationType {
		return time.Duration(v.Int()).String()
	}
	if v.Type().Implements(stringerType) && v.CanInterface() {
		return v.Interface().(fmt.Stringer).String()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Map:
		return fmt.Sprintf("map[%d items]", v.Len())
	}
	return fmt.Sprintf("%v", v.Interface())
}
