package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

const categoryTag = "quote_category"

// quoteCandidate carries the write rules for a new quote. Field order is the
// order in which violations are reported.
type quoteCandidate struct {
	Text     string   `json:"text"     validate:"required,min=10,max=500"`
	Author   string   `json:"author"   validate:"required,min=2,max=100"`
	Category string   `json:"category" validate:"omitempty,quote_category"`
	Tags     []string `json:"tags"     validate:"omitempty,dive,required,max=50"`
}

// QuoteValidator checks new quotes against the write rules and the configured
// category set.
type QuoteValidator struct {
	validate   *validator.Validate
	categories []domain.Category
	allowed    map[domain.Category]struct{}
}

// NewQuoteValidator creates a validator accepting the given categories.
func NewQuoteValidator(categories []domain.Category) *QuoteValidator {
	allowed := make(map[domain.Category]struct{}, len(categories))
	for _, c := range categories {
		allowed[c] = struct{}{}
	}

	v := &QuoteValidator{
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		categories: categories,
		allowed:    allowed,
	}

	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	// Registration only fails for empty tags or nil functions.
	_ = v.validate.RegisterValidation(categoryTag, func(fl validator.FieldLevel) bool {
		return v.ValidCategory(fl.Field().String())
	})

	return v
}

// ValidCategory reports whether c is one of the configured categories.
func (v *QuoteValidator) ValidCategory(c string) bool {
	_, ok := v.allowed[domain.Category(c)]
	return ok
}

// CategoryError is the validation error for a category outside the set.
func (v *QuoteValidator) CategoryError(value string) error {
	return domain.NewValidationErrorWithValue("category", v.categoryMessage(), value)
}

// Normalize trims surrounding whitespace from every field.
func (v *QuoteValidator) Normalize(candidate domain.NewQuote) domain.NewQuote {
	normalized := domain.NewQuote{
		Text:     strings.TrimSpace(candidate.Text),
		Author:   strings.TrimSpace(candidate.Author),
		Category: domain.Category(strings.TrimSpace(string(candidate.Category))),
		Tags:     make([]string, 0, len(candidate.Tags)),
	}

	for _, tag := range candidate.Tags {
		normalized.Tags = append(normalized.Tags, strings.TrimSpace(tag))
	}

	return normalized
}

// Validate checks a normalized candidate and returns the first violation as a
// domain.ValidationError.
func (v *QuoteValidator) Validate(candidate domain.NewQuote) error {
	err := v.validate.Struct(quoteCandidate{
		Text:     candidate.Text,
		Author:   candidate.Author,
		Category: string(candidate.Category),
		Tags:     candidate.Tags,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validating quote: %w", err)
	}

	fe := fieldErrs[0]

	return domain.NewValidationErrorWithValue(fe.Field(), v.message(fe), fe.Value())
}

func (v *QuoteValidator) message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if strings.HasSuffix(fe.Field(), "]") {
			return fmt.Sprintf("%q is not allowed to be empty", fe.Field())
		}

		return fmt.Sprintf("%q is required", fe.Field())
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", fe.Field(), fe.Param())
	case categoryTag:
		return v.categoryMessage()
	default:
		return fmt.Sprintf("%q is invalid", fe.Field())
	}
}

func (v *QuoteValidator) categoryMessage() string {
	names := make([]string, 0, len(v.categories))
	for _, c := range v.categories {
		names = append(names, string(c))
	}

	return fmt.Sprintf(`"category" must be one of [%s]`, strings.Join(names, ", "))
}
