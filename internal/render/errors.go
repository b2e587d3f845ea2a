package render

import "fmt"

// MissingSchemaError is returned for an envelope without logical columns.
type MissingSchemaError struct{}

func (e *MissingSchemaError) Error() string {
	return "Data returned without schema information"
}

// MissingColumnError is returned in strict mode when a requested logical key
// is not part of the schema.
type MissingColumnError struct {
	Key string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("Column %q is not present in the result schema", e.Key)
}
