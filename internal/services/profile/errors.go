package profile

import (
	"fmt"
	"strings"
)

// Gap codes.
const (
	CodeRequired     = "ERR_REQUIRED"
	CodeEmpty        = "ERR_EMPTY"
	CodeNotNumeric   = "ERR_NUMERIC"
	CodeNotWhole     = "ERR_WHOLE"
	CodeNotText      = "ERR_TEXT"
	CodeUnknownField = "ERR_UNKNOWN_FIELD"
	CodeRange        = "ERR_PROFILE_RANGE"
	CodeOneOf        = "ERR_ONEOF"
)

// ValidationGap describes one field that cannot be sent to the prediction service.
type ValidationGap struct {
	Field   string                 `json:"field"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// InvalidProfileError is returned by Normalize when one or more fields are unusable.
type InvalidProfileError struct {
	Gaps []ValidationGap
}

func (e *InvalidProfileError) Error() string {
	msgs := make([]string, 0, len(e.Gaps))
	for _, g := range e.Gaps {
		msgs = append(msgs, g.Message)
	}
	return fmt.Sprintf("invalid profile: %s", strings.Join(msgs, "; "))
}

// Fields lists the fields with at least one gap, in report order.
func (e *InvalidProfileError) Fields() []string {
	seen := make(map[string]bool, len(e.Gaps))
	out := make([]string, 0, len(e.Gaps))
	for _, g := range e.Gaps {
		if !seen[g.Field] {
			seen[g.Field] = true
			out = append(out, g.Field)
		}
	}
	return out
}
