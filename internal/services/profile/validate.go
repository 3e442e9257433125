package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
)

const tagProfileRange = "profile_range"

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation(tagProfileRange, validateProfileRange); err != nil {
		panic(fmt.Sprintf("register %s: %v", tagProfileRange, err))
	}
}

// validateProfileRange checks a numeric payload field against the field table.
func validateProfileRange(fl validator.FieldLevel) bool {
	spec, ok := models.LookupField(fl.FieldName())
	if !ok || !spec.Numeric() {
		return false
	}
	f := fl.Field()
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return spec.InRange(float64(f.Int()))
	case reflect.Float32, reflect.Float64:
		return spec.InRange(f.Float())
	default:
		return false
	}
}

// validatePayload runs the struct rules and converts failures into gaps.
func validatePayload(p *models.Payload) ([]ValidationGap, error) {
	err := validate.Struct(p)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validate payload: %w", err)
	}
	gaps := make([]ValidationGap, 0, len(verrs))
	for _, fe := range verrs {
		gaps = append(gaps, gapFromFieldError(fe))
	}
	return gaps, nil
}

func gapFromFieldError(fe validator.FieldError) ValidationGap {
	field := fe.Field()
	spec, _ := models.LookupField(field)
	switch fe.Tag() {
	case tagProfileRange:
		return rangeGap(spec, fe.Value())
	case "oneof":
		return ValidationGap{
			Field:   field,
			Code:    CodeOneOf,
			Message: fmt.Sprintf("%s must be one of: %s", field, strings.Join(spec.Options, ", ")),
			Params:  map[string]interface{}{"options": spec.Options, "value": fe.Value()},
		}
	default:
		return ValidationGap{
			Field:   field,
			Code:    "ERR_" + strings.ToUpper(fe.Tag()),
			Message: fmt.Sprintf("%s failed validation: %s", field, fe.Tag()),
		}
	}
}

func rangeGap(spec models.FieldSpec, value interface{}) ValidationGap {
	return ValidationGap{
		Field:   spec.Name,
		Code:    CodeRange,
		Message: fmt.Sprintf("%s must be between %s and %s", spec.Name, formatBound(spec.Min), formatBound(spec.Max)),
		Params:  map[string]interface{}{"min": spec.Min, "max": spec.Max, "value": value},
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
