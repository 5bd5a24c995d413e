package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"helpdesk-app/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func GetValidator() *validator.Validate {
	once.Do(initValidator)
	return validate
}

func initValidator() {
	validate = validator.New()

	// Report fields by their json names so error messages match the payload.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateRequest checks a request struct and reports the first violation in
// field declaration order.
func ValidateRequest(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}

	first := validationErrors[0]
	if first.Tag() == "required" {
		return models.MissingField(first.Field())
	}
	return fmt.Errorf("Invalid %s", first.Field())
}
