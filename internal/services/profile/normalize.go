package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	"github.com/Shivam007kumar/customer-churn/pkg/util"
)

// int fields beyond this magnitude cannot be represented exactly and are out of any range.
const maxExactInt = 1 << 53

// Normalize converts field values into a wire payload. It is the only place
// edit-time values are coerced: numeric strings become numbers, categorical
// strings are matched case-insensitively against their options. Every field in
// the table must be present and usable; all problems are returned together as
// *InvalidProfileError.
//
// Normalize(p.Values()) returns p for any valid payload.
func Normalize(values map[string]interface{}) (models.Payload, error) {
	var (
		gaps   []ValidationGap
		failed = make(map[string]bool)
		wire   = make(map[string]interface{}, len(values))
	)
	addGap := func(g ValidationGap) {
		gaps = append(gaps, g)
		failed[g.Field] = true
	}

	for _, spec := range models.Fields() {
		raw, ok := values[spec.Name]
		if !ok || raw == nil {
			addGap(ValidationGap{Field: spec.Name, Code: CodeRequired, Message: spec.Name + " is required"})
			continue
		}
		if spec.Numeric() {
			v, gap := coerceNumber(spec, raw)
			if gap != nil {
				addGap(*gap)
				continue
			}
			wire[spec.Name] = v
			continue
		}
		s, ok := raw.(string)
		if !ok {
			addGap(ValidationGap{Field: spec.Name, Code: CodeNotText, Message: spec.Name + " must be text"})
			continue
		}
		if canon, ok := spec.Canonical(s); ok {
			s = canon
		}
		wire[spec.Name] = s
	}

	for _, key := range unknownKeys(values) {
		addGap(ValidationGap{Field: key, Code: CodeUnknownField, Message: key + " is not a profile field"})
	}

	var p models.Payload
	b, err := json.Marshal(wire)
	if err != nil {
		return models.Payload{}, fmt.Errorf("encode profile: %w", err)
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return models.Payload{}, fmt.Errorf("decode profile: %w", err)
	}

	ruleGaps, err := validatePayload(&p)
	if err != nil {
		return models.Payload{}, err
	}
	for _, g := range ruleGaps {
		// zero values of fields that already failed coercion are not reported twice
		if !failed[g.Field] {
			addGap(g)
		}
	}

	if len(gaps) > 0 {
		sortGaps(gaps)
		return models.Payload{}, &InvalidProfileError{Gaps: gaps}
	}
	return p, nil
}

func coerceNumber(spec models.FieldSpec, raw interface{}) (interface{}, *ValidationGap) {
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return nil, &ValidationGap{Field: spec.Name, Code: CodeEmpty, Message: spec.Name + " is empty"}
	}
	v, ok := toNumber(raw)
	if !ok {
		return nil, &ValidationGap{
			Field:   spec.Name,
			Code:    CodeNotNumeric,
			Message: spec.Name + " must be a number",
			Params:  map[string]interface{}{"value": raw},
		}
	}
	if spec.Kind != models.KindInt {
		return v, nil
	}
	if !util.IsWhole(v) {
		return nil, &ValidationGap{
			Field:   spec.Name,
			Code:    CodeNotWhole,
			Message: spec.Name + " must be a whole number",
			Params:  map[string]interface{}{"value": v},
		}
	}
	if math.Abs(v) > maxExactInt {
		g := rangeGap(spec, v)
		return nil, &g
	}
	return int64(v), nil
}

func unknownKeys(values map[string]interface{}) []string {
	var out []string
	for k := range values {
		if _, ok := models.LookupField(k); !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// sortGaps orders gaps by field table position; unknown keys go last.
func sortGaps(gaps []ValidationGap) {
	pos := make(map[string]int)
	for i, f := range models.Fields() {
		pos[f.Name] = i
	}
	rank := func(field string) int {
		if i, ok := pos[field]; ok {
			return i
		}
		return len(pos)
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		return rank(gaps[i].Field) < rank(gaps[j].Field)
	})
}
