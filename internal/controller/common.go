package controller

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	defaultLimit  = 5
	defaultOffset = 0
)

type errorResponse struct {
	Reason string `json:"reason"`
}

// Money and quantities travel as JSON strings to keep them exact.
// decimal.NewFromString rejects NaN, infinities and garbage outright.
func parseDecimal(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("'%s': not a valid decimal number", field)
	}

	return d, nil
}

func getAllErrorMessages(err error) string {
	var builder strings.Builder
	for _, fe := range err.(validator.ValidationErrors) {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	s, i := "", int32(0)
	if fe.Type() == reflect.TypeOf(s) {
		return getMessageForString(fe)
	}

	if fe.Type() == reflect.TypeOf(i) || fe.Type() == reflect.TypeOf(0) {
		return getMessageForInt(fe)
	}

	if fe.Kind() == reflect.Slice {
		return getMessageForSlice(fe)
	}

	return "incorrect value passed"
}

func getMessageForInt(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	case "datetime":
		return "should be a timestamp in RFC 3339 format"
	}

	return "incorrect value passed"
}

func getMessageForSlice(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return "at least one element is required"
	case "max":
		return "should have at most " + fe.Param() + " elements"
	}

	return "incorrect value passed"
}
