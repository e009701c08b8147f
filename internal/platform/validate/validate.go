package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v *validator.Validate

func init() {
	v = validator.New(validator.WithRequiredStructEnabled())

	// Nombres de campo según el tag json (los mensajes usan el wire format).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("latitude", validateLatitude)
	_ = v.RegisterValidation("longitude", validateLongitude)
}

func validateLatitude(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90 && lat <= 90
}

func validateLongitude(fl validator.FieldLevel) bool {
	lon := fl.Field().Float()
	return lon >= -180 && lon <= 180
}

func Struct(s any) error {
	return v.Struct(s)
}

// Message traduce el primer error de validación a un texto para el cliente.
func Message(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		if err == nil {
			return ""
		}
		return err.Error()
	}
	fe := ves[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "latitude":
		return field + " must be between -90 and 90"
	case "longitude":
		return field + " must be between -180 and 180"
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

// Field devuelve el nombre (json) del primer campo inválido.
func Field(err error) string {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return ves[0].Field()
	}
	return ""
}
