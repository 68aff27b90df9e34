package utils

import "reflect"

const columnTag = "db"

// Columns lists the db-tagged fields of a struct in declaration order.
func Columns(input any) []string {
	var out []string
	walkColumns(input, func(column string, _ reflect.Value) {
		out = append(out, column)
	})
	return out
}

// ColumnValues maps each db-tagged field to its value, ready for squirrel's SetMap.
func ColumnValues(input any) map[string]any {
	out := make(map[string]any)
	walkColumns(input, func(column string, v reflect.Value) {
		out[column] = v.Interface()
	})
	return out
}

func walkColumns(input any, fn func(column string, v reflect.Value)) {
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		column := field.Tag.Get(columnTag)
		if column == "" || column == "-" {
			continue
		}

		fn(column, v.Field(i))
	}
}
