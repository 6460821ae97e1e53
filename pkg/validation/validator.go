package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		configure(v)
	}
}

// New returns a standalone validator configured like Gin's.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	configure(v)
	return v
}

// Default is a shared validator for callers that were not given one.
var Default = sync.OnceValue(New)

// configure reports JSON tag names in errors and registers the aliases.
func configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("pwd", "min=8") // password minimum length
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Gin binds with encoding/json, so these are the payload errors it returns.
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "required_without":
		return "is required when " + param + " is not present"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "min", "max":
		word := "at least"
		if tag == "max" {
			word = "at most"
		}
		switch fe.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain %s %s items", word, param)
		case reflect.String:
			return fmt.Sprintf("must be %s %s characters long", word, param)
		default:
			return fmt.Sprintf("must be %s %s", word, param)
		}
	case "pwd":
		return "min length 8"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}
