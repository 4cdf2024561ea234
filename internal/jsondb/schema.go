// Reflection-based column descriptions for stored record types.

package jsondb

import (
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// ColumnType classifies the values a table column holds.
type ColumnType string

const (
	// ColumnTypeText stores strings, including enum literals and
	// ISO-8601 date strings kept verbatim for round-tripping.
	ColumnTypeText ColumnType = "text"
	// ColumnTypeNumber stores integers and floats.
	ColumnTypeNumber ColumnType = "number"
	// ColumnTypeBool stores booleans.
	ColumnTypeBool ColumnType = "bool"
	// ColumnTypeJSON stores nested arrays/objects.
	ColumnTypeJSON ColumnType = "json"
)

// Column describes one field of a stored record.
type Column struct {
	Name        string     `json:"name"`
	Type        ColumnType `json:"type"`
	Required    bool       `json:"required,omitempty"`
	Description string     `json:"description,omitempty"`
}

// TableSchema describes the record layout of one store key.
type TableSchema struct {
	Key     string   `json:"key"`
	Columns []Column `json:"columns"`
}

// SchemaFor extracts the column layout of a record type.
//
// It uses github.com/invopop/jsonschema to pull field descriptions from
// `jsonschema:"description=..."` tags and required fields from the
// generated schema. External import/export tooling consumes the result
// to learn the on-disk contract without parsing Go source.
func SchemaFor[T any](key string) (TableSchema, error) {
	t := reflect.TypeFor[T]()

	structType := t
	if t.Kind() == reflect.Pointer {
		structType = t.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return TableSchema{}, fmt.Errorf("type must be a struct or pointer to struct, got %s", t.Kind())
	}

	// Generate JSON Schema from the type with inline properties (no $ref).
	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	schema := r.ReflectFromType(structType)

	required := make(map[string]bool)
	for _, name := range schema.Required {
		required[name] = true
	}

	var columns []Column
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		name := pair.Key
		prop := pair.Value

		colType := ColumnTypeText
		for i := range structType.NumField() {
			field := structType.Field(i)
			if jsonFieldName(&field) == name {
				colType = goTypeToColumnType(field.Type)
				break
			}
		}

		columns = append(columns, Column{
			Name:        name,
			Type:        colType,
			Required:    required[name],
			Description: prop.Description,
		})
	}

	return TableSchema{Key: key, Columns: columns}, nil
}

// jsonFieldName returns the JSON field name for a struct field.
func jsonFieldName(field *reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	// Handle "name,omitempty" format
	for i, c := range tag {
		if c == ',' {
			if i == 0 {
				return field.Name
			}
			return tag[:i]
		}
	}
	return tag
}

// goTypeToColumnType maps Go types to column types.
func goTypeToColumnType(t reflect.Type) ColumnType {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return ColumnTypeText
	case reflect.Bool:
		return ColumnTypeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return ColumnTypeNumber
	case reflect.Struct, reflect.Slice, reflect.Array, reflect.Map:
		return ColumnTypeJSON
	default:
		return ColumnTypeText
	}
}
