package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidQuery indicates a query no category or backend can act on.
// This is the only error the pipeline surfaces to callers.
var ErrInvalidQuery = errors.New("invalid query")

// SchemaError reports the first field of a candidate answer that violates
// the schema contract.
type SchemaError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error returns the violated field with its reason.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation on %s: %s", e.Field, e.Reason)
}

// schemaErrorFrom converts a validator error into a SchemaError naming the
// first failing field in lower-cased dotted form.
func schemaErrorFrom(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		// Namespace is "StructuredAnswer.SubTasks[0].Title"; drop the root.
		field := first.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		return &SchemaError{
			Field:  strings.ToLower(field),
			Reason: fmt.Sprintf("failed %q constraint", first.Tag()),
		}
	}
	return &SchemaError{Field: "answer", Reason: err.Error()}
}
