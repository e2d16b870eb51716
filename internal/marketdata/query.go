package marketdata

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Periods and Intervals are the accepted history ranges and bar sizes.
var (
	Periods   = []string{"1mo", "3mo", "6mo", "1y", "2y", "5y", "10y"}
	Intervals = []string{"1d", "1wk", "1mo", "60m"}
)

// Query selects a ticker's history.
type Query struct {
	Ticker   string `validate:"required,max=32"`
	Period   string `default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y 10y"`
	Interval string `default:"1d" validate:"oneof=1d 1wk 1mo 60m"`
}

// Normalize upper-cases the ticker, fills defaults and validates.
func (q *Query) Normalize() error {
	q.Ticker = strings.ToUpper(strings.TrimSpace(q.Ticker))
	return Validate(q)
}

// Intraday reports whether bars carry a time of day.
func (q Query) Intraday() bool {
	return q.Interval == "60m"
}

// ValidationError lists invalid fields with a message for each.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " " + e.Fields[name]
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate fills `default` tags on v (a struct pointer) and checks its
// `validate` tags. Field failures are returned as *ValidationError.
func Validate(v any) error {
	if err := defaults.Set(v); err != nil {
		return fmt.Errorf("apply defaults: %w", err)
	}

	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[strings.ToLower(fe.Field())] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind().String() == "string" {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	}
	return "failed " + fe.Tag() + " check"
}
