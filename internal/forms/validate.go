// Package forms parses and validates the dashboard's HTML forms before any
// request reaches the backend.
package forms

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// messages maps field and failed tag to the text shown to the operator.
type messages map[string]map[string]string

// check runs the struct validator and translates failures with msgs. A
// failed tag without a dedicated message falls back to the field's
// "required" text.
func check(s any, msgs messages) Errors {
	var out Errors
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out.add(FieldForm, err.Error())
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		byTag := msgs[field]
		msg := byTag[fe.Tag()]
		if msg == "" {
			msg = byTag["required"]
		}
		if msg == "" {
			msg = "Invalid value"
		}
		out.add(field, msg)
	}
	return out.orNil()
}

// parseInt returns nil for empty or non-integer input.
func parseInt(raw string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &v
}

func parseInt64(raw string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseFloat accepts finite numbers only; "Inf" and "NaN" cannot be sent
// as JSON.
func parseFloat(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
