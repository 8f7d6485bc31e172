package schema

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/xeipuuv/gojsonschema"
)

// FieldError is used to indicate a problem with a specific data field.
type FieldError struct {
	field   string
	details map[string]interface{}
	Message string `json:"message"`
}

func (fe FieldError) Field() string {
	return fe.field
}

func (fe FieldError) Details() map[string]interface{} {
	return fe.details
}

// ValidationError represents a collection of field errors.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

// Error implements the error interface on ValidationError.
func (ve ValidationError) Error() string {
	d, err := json.Marshal(ve)
	if err != nil {
		return err.Error()
	}

	return string(d)
}

// IsValidationError checks if an error of type ValidationError exists.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func toValidationError(result *gojsonschema.Result) ValidationError {
	errs := make([]FieldError, 0, len(result.Errors()))
	for _, res := range result.Errors() {
		switch res.(type) {
		case *gojsonschema.NumberAllOfError, *gojsonschema.NumberAnyOfError, *gojsonschema.NumberOneOfError:
			continue
		default:
			errs = append(errs, FieldError{
				field:   res.Field(),
				details: res.Details(),
				Message: newErrorMessage(res),
			})
		}
	}

	ve := ValidationError{
		Errors: errs,
	}
	slices.SortFunc(ve.Errors, func(a, b FieldError) int { return cmp.Compare(a.Message, b.Message) })

	return ve
}

func newErrorMessage(resErr gojsonschema.ResultError) string {
	switch resErr.(type) {
	case *gojsonschema.RequiredError:
		return fmt.Sprintf("Field '%s' is missing", resErr.Details()["property"])
	case *gojsonschema.StringLengthGTEError:
		return fmt.Sprintf("Field '%s' is too short", resErr.Field())
	case *gojsonschema.StringLengthLTEError:
		return fmt.Sprintf("Field '%s' is too long", resErr.Field())
	case *gojsonschema.ArrayMinItemsError:
		return fmt.Sprintf("Field '%s' must contain at least %d items", resErr.Field(), resErr.Details()["min"])
	case *gojsonschema.ArrayMaxItemsError:
		return fmt.Sprintf("Field '%s' must contain at most %d items", resErr.Field(), resErr.Details()["max"])
	case *gojsonschema.InvalidTypeError:
		return fmt.Sprintf("Field '%s' should be of type %s", resErr.Field(), resErr.Details()["expected"])
	case *gojsonschema.EnumError:
		return fmt.Sprintf("Field '%s' must be one of %s", resErr.Field(), resErr.Details()["allowed"])
	case *gojsonschema.NumberGTEError:
		return fmt.Sprintf("Field '%s' is too small", resErr.Field())
	case *gojsonschema.NumberLTEError:
		return fmt.Sprintf("Field '%s' is too large", resErr.Field())
	default:
		return fmt.Sprintf("[%T]: %s", resErr, resErr.Description())
	}
}
