package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	"github.com/Shivam007kumar/customer-churn/pkg/util"
)

var (
	ErrUnknownField = errors.New("unknown profile field")
	ErrNotNumeric   = errors.New("value is not a number")
	ErrNotText      = errors.New("value is not text")
)

// Profile holds the in-progress customer profile of one form session.
// Numeric fields hold a float64 or the empty string while the user is typing;
// categorical fields hold the raw string. A Profile is never mutated in place.
type Profile struct {
	values map[string]interface{}
}

// New returns a profile populated with every field's default.
func New() Profile {
	fields := models.Fields()
	values := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		values[f.Name] = f.Default
	}
	return Profile{values: values}
}

// Set returns a copy of p with field replaced by raw.
//
// Numeric fields accept numbers or numeric strings; a blank string is kept as ""
// so the field can be cleared while editing. Values are not clamped.
// Categorical fields keep the string as typed; membership is checked by Normalize.
func (p Profile) Set(field string, raw interface{}) (Profile, error) {
	spec, ok := models.LookupField(field)
	if !ok {
		return p, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	var v interface{}
	if spec.Numeric() {
		n, err := editNumber(raw)
		if err != nil {
			return p, fmt.Errorf("%s: %w", field, err)
		}
		v = n
	} else {
		s, ok := raw.(string)
		if !ok {
			return p, fmt.Errorf("%s: %w", field, ErrNotText)
		}
		v = s
	}

	next := p.Snapshot()
	next[field] = v
	return Profile{values: next}, nil
}

// Get returns the current value of field.
func (p Profile) Get(field string) (interface{}, bool) {
	v, ok := p.values[field]
	return v, ok
}

// Snapshot returns a copy of the field values, safe to hand to another goroutine.
func (p Profile) Snapshot() map[string]interface{} {
	out := make(map[string]interface{}, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Normalize converts the profile into a wire payload.
func (p Profile) Normalize() (models.Payload, error) {
	return Normalize(p.values)
}

// editNumber coerces an edit-time value: "" stays "", anything else must be a finite number.
func editNumber(raw interface{}) (interface{}, error) {
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return "", nil
	}
	n, ok := toNumber(raw)
	if !ok {
		return nil, ErrNotNumeric
	}
	return n, nil
}

func toNumber(raw interface{}) (float64, bool) {
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		return util.ParseNumber(n)
	default:
		return 0, false
	}
	return v, util.IsFinite(v)
}
