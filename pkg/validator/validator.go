package validator

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var registerOnce sync.Once

// Register configures gin's binding validator: json field names in errors plus
// the "date" (YYYY-MM-DD) and "clock" (HH:MM or HH:MM:SS) tags.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(DateLayout, fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if _, err := time.Parse(ClockLayout, s); err == nil {
				return true
			}
			_, err := time.Parse("15:04:05", s)
			return err == nil
		})
	})
}

// IsValidationError reports whether err came from struct validation.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return stderrors.As(err, &verrs)
}

// Message renders validation errors as a single human readable sentence.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, fieldMessage(e))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", e.Field())
	case "date":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", e.Field())
	case "clock":
		return fmt.Sprintf("%s must be a time (HH:MM)", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
