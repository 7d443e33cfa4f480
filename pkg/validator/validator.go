// Package validator provides request validation utilities
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrors is a slice of ValidationError
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	var messages []string
	for _, e := range ve {
		messages = append(messages, e.Message)
	}
	return strings.Join(messages, "; ")
}

// Init initializes the validator with custom validators
func Init() {
	once.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validate = v

			// Use JSON tag names in error reports
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})

			_ = v.RegisterValidation("groupkey", validateGroupKey)
			_ = v.RegisterValidation("channel", validateChannel)
		}
	})
}

// Get returns the validator instance
func Get() *validator.Validate {
	Init()
	return validate
}

// ParseValidationErrors converts validator.ValidationErrors to ValidationErrors
func ParseValidationErrors(err error) ValidationErrors {
	var validationErrors ValidationErrors

	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, e := range ve {
			field := e.Field()
			tag := e.Tag()

			validationErrors = append(validationErrors, ValidationError{
				Field:   field,
				Tag:     tag,
				Message: formatErrorMessage(field, tag, e.Param()),
			})
		}
	}

	return validationErrors
}

// formatErrorMessage creates a human-readable error message
func formatErrorMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + param
	case "max":
		return field + " must be at most " + param
	case "oneof":
		return field + " must be one of: " + param
	case "groupkey":
		return field + " must be a valid grouping key (intent, agent)"
	case "channel":
		return field + " must be a valid channel (chat, phone, email, sms)"
	case "gte":
		return field + " must be greater than or equal to " + param
	case "lte":
		return field + " must be less than or equal to " + param
	case "gt":
		return field + " must be greater than " + param
	case "lt":
		return field + " must be less than " + param
	default:
		return field + " is invalid"
	}
}

// Custom validators

// validateGroupKey checks if a string is a valid segment grouping key
func validateGroupKey(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Default will be set
	}
	validKeys := map[string]bool{
		"intent": true,
		"agent":  true,
	}
	return validKeys[val]
}

// validateChannel checks if a string is a valid interaction channel
func validateChannel(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	validChannels := map[string]bool{
		"chat":  true,
		"phone": true,
		"email": true,
		"sms":   true,
	}
	return validChannels[val]
}
