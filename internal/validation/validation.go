package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/MosinFAM/grams/internal/errs"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// notblank: строка должна содержать хотя бы один непробельный символ
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// В ошибках используем имя из тега json, а не имя поля структуры
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// Struct проверяет структуру и возвращает 422 с ошибками по полям
func Struct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	return errs.NewUnprocessableError("Validation failed", fieldErrors(validationErrors))
}

func fieldErrors(validationErrors validator.ValidationErrors) []errs.FieldError {
	result := make([]errs.FieldError, 0, len(validationErrors))
	for _, err := range validationErrors {
		var msg string

		switch err.Tag() {
		case "required", "notblank":
			msg = "can't be blank"

		case "min":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("is too short (minimum is %s characters)", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("is too long (maximum is %s characters)", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "email":
			msg = "is invalid"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s:%s", err.Tag(), err.Param())
			} else {
				msg = err.Tag()
			}
		}

		result = append(result, errs.FieldError{
			Field: err.Field(),
			Error: msg,
		})
	}
	return result
}
