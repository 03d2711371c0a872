package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// jsonTagParts is the number of parts when splitting a JSON tag by comma.
// The first part is the field name, subsequent parts are options like "omitempty".
const jsonTagParts = 2

// BindError is a request that could not be decoded at all.
type BindError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *BindError) Error() string {
	return e.Message
}

// Unwrap returns the decoding error.
func (e *BindError) Unwrap() error {
	return e.Cause
}

var (
	// validate is the singleton validator instance.
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the singleton validator instance.
// Field names in errors come from json tags, falling back to form tags.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "" {
				tag = fld.Tag.Get("form")
			}

			name := strings.SplitN(tag, ",", jsonTagParts)[0]
			if name == "-" {
				return ""
			}

			return name
		})
	})

	return validate
}

// Validate validates a struct and returns the first violation as a
// domain.ValidationError.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domain.NewValidationErrorWithValue(fe.Field(), validationMessage(fe), fe.Value())
	}

	return fmt.Errorf("validating request: %w", err)
}

// BindQueryAndValidate binds query parameters and validates.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return &BindError{Code: ErrorCodeBadRequest, Message: "malformed query string", Cause: err}
	}

	return Validate(v)
}

// BindJSON decodes the request body into v. An empty body decodes as an
// empty object so that missing fields are reported by the write rules. The
// body must hold exactly one JSON value.
func BindJSON(c *gin.Context, v any) error {
	if c.Request.Body == nil {
		return nil
	}

	err := c.ShouldBindBodyWithJSON(v)
	if errors.Is(err, io.EOF) {
		return nil
	}

	if err == nil {
		if !singleValue(c) {
			return &BindError{Code: ErrorCodeBadRequest, Message: "request body is not valid JSON", Cause: errTrailingData}
		}

		return nil
	}

	var (
		maxBytesErr *http.MaxBytesError
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &maxBytesErr):
		return &BindError{
			Code:    ErrorCodeTooLarge,
			Message: TooLargeMessage(maxBytesErr.Limit),
			Cause:   err,
		}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return domain.NewValidationError(typeErr.Field, typeMessage(v, typeErr))
	case errors.As(err, &typeErr):
		return domain.NewValidationError("", `"value" must be of type object`)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return &BindError{Code: ErrorCodeBadRequest, Message: "request body is not valid JSON", Cause: err}
	default:
		return &BindError{Code: ErrorCodeBadRequest, Message: "request body could not be read", Cause: err}
	}
}

var errTrailingData = errors.New("unexpected data after JSON value")

// singleValue reports whether the body gin cached while binding is one JSON
// value; the decoder stops after the first.
func singleValue(c *gin.Context) bool {
	raw, _ := c.Get(gin.BodyBytesKey)
	body, _ := raw.([]byte)

	return json.Valid(body)
}

// typeMessage describes a JSON value of the wrong type for a field of v.
func typeMessage(v any, e *json.UnmarshalTypeError) string {
	switch e.Type.Kind() {
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("%q must be an array", e.Field)
	case reflect.String:
		if fieldKind(v, e.Field) == reflect.Slice {
			return fmt.Sprintf("%q must only contain strings", e.Field)
		}

		return fmt.Sprintf("%q must be a string", e.Field)
	default:
		return fmt.Sprintf("%q has an invalid type", e.Field)
	}
}

// fieldKind returns the kind of the struct field of v whose json name is name.
func fieldKind(v any, name string) reflect.Kind {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return reflect.Invalid
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if strings.SplitN(f.Tag.Get("json"), ",", jsonTagParts)[0] == name {
			return f.Type.Kind()
		}
	}

	return reflect.Invalid
}

// validationMessages maps validation tags to message templates.
// Use {field} and {param} as placeholders.
var validationMessages = map[string]string{
	"required": `"{field}" is required`,
	"min":      `"{field}" length must be at least {param} characters long`,
	"max":      `"{field}" length must be less than or equal to {param} characters long`,
	"oneof":    `"{field}" must be one of [{param}]`,
}

// validationMessage returns a human-readable message for a validation error.
func validationMessage(fe validator.FieldError) string {
	msg, ok := validationMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%q failed validation: %s", fe.Field(), fe.Tag())
	}

	return strings.NewReplacer("{field}", fe.Field(), "{param}", fe.Param()).Replace(msg)
}
