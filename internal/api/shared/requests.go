package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tenx-cards/internal/domain"
)

// maxBodyBytes covers a 10000 character source text with room for JSON overhead.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// ValidateRequest runs the struct tags of v.
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// FieldErrors converts validator or domain validation failures into response
// details. Other errors yield nil.
func FieldErrors(err error) []FieldError {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		out := make([]FieldError, 0, len(vErrs))
		for _, fe := range vErrs {
			out = append(out, FieldError{Field: fieldPath(fe), Message: tagMessage(fe)})
		}
		return out
	}

	var dErrs domain.ValidationErrors
	if errors.As(err, &dErrs) {
		out := make([]FieldError, 0, len(dErrs))
		for _, de := range dErrs {
			out = append(out, FieldError{Field: de.Field, Message: de.Message})
		}
		return out
	}

	var dErr *domain.ValidationError
	if errors.As(err, &dErr) {
		return []FieldError{{Field: dErr.Field, Message: dErr.Message}}
	}
	return nil
}

// fieldPath drops the request struct name: "Req.flashcards[0].front" -> "flashcards[0].front".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
