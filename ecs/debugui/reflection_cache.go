package debugui

import (
	"reflect"
	"sync"
)

// editableField is one exported field of a component struct.
type editableField struct {
	Name  string
	Index int
}

// fieldCache memoizes the editable fields per struct type. The inspector
// walks the same handful of component types every frame.
var fieldCache sync.Map

// editableFields lists the exported fields of t in declaration order. Non-struct
// types have none.
func editableFields(t reflect.Type) []editableField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]editableField)
	}

	var fields []editableField
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			if f := t.Field(i); f.IsExported() {
				fields = append(fields, editableField{Name: f.Name, Index: i})
			}
		}
	}

	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]editableField)
}
