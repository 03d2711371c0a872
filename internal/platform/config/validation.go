package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// validate reports fields by their koanf keys, so errors name the same
// path a YAML file or APP_ variable would use.
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	return v
}()

// Validate checks c and lists every problem found. The service refuses to
// start on any of them.
func (c *Config) Validate() error {
	var problems []string

	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(c); err != nil {
		if !errors.As(err, &fieldErrs) {
			return err
		}

		for _, fe := range fieldErrs {
			problems = append(problems, formatFieldError(fe))
		}
	}

	// Struct tags cannot express these; they only run on an otherwise valid
	// config so a missing section is not reported twice.
	if len(problems) == 0 {
		problems = c.crossFieldErrors()
	}

	if len(problems) == 0 {
		return nil
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(problems, "\n  "))
}

func (c *Config) crossFieldErrors() []string {
	var errs []string

	if c.Store.Driver == StoreDriverMongo && c.Store.Mongo.URI == "" {
		errs = append(errs, "store.mongo.uri is required when store.driver is mongo")
	}

	if c.Store.Driver == StoreDriverPostgres && c.Store.Postgres.DSN == "" {
		errs = append(errs, "store.postgres.dsn is required when store.driver is postgres")
	}

	if !slices.Contains(c.Quotes.Categories, c.Quotes.DefaultCategory) {
		errs = append(errs, "quotes.default_category must be one of: "+strings.Join(c.Quotes.Categories, " "))
	}

	return errs
}

func formatFieldError(fe validator.FieldError) string {
	field := formatFieldPath(fe.Namespace())
	parent, _, _ := cutLast(field)

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_if":
		// Param is "<GoField> <value>".
		other, value, _ := strings.Cut(fe.Param(), " ")
		return fmt.Sprintf("%s is required when %s is %s", field, join(parent, snake(other)), value)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "url":
		return field + " must be a valid URL"
	case "startswith":
		return fmt.Sprintf("%s must start with %q", field, fe.Param())
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", field, join(parent, snake(fe.Param())))
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// formatFieldPath drops the root type from a validator namespace:
// "Config.server.port" becomes "server.port".
func formatFieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		namespace = rest
	}

	return strings.ToLower(namespace)
}

// snake turns a Go field name into its koanf key: MaxLimit becomes max_limit.
func snake(name string) string {
	var b strings.Builder

	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}

			r = unicode.ToLower(r)
		}

		b.WriteRune(r)
	}

	return b.String()
}

func cutLast(path string) (parent, leaf string, ok bool) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return "", path, false
	}

	return path[:i], path[i+1:], true
}

func join(parent, leaf string) string {
	if parent == "" {
		return leaf
	}

	return parent + "." + leaf
}
