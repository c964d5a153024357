package main

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// phoneCharsPattern is the accepted phone character set: digits, +, (), -,
// and whitespace.
var phoneCharsPattern = regexp.MustCompile(`^[0-9+()\-\s]+$`)

type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	_ = v.RegisterValidation("phonechars", func(fl validator.FieldLevel) bool {
		return phoneCharsPattern.MatchString(fl.Field().String())
	})
	return &requestValidator{validate: v}
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}
