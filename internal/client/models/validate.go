package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/bookkeeper/internal/common"
	"github.com/go-playground/validator/v10"
)

// ValidationError lists the offending fields with a message for each.
// It matches common.ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return fmt.Sprintf("%s: %s", common.ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == common.ErrValidation
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = validate.RegisterValidation("cover", func(fl validator.FieldLevel) bool {
			return CheckCoverURL(fl.Field().String()) == nil
		})
	})
	return validate
}

// fieldNames maps struct fields to the names used in the durable format.
var fieldNames = map[string]string{
	"Id":          "id",
	"Title":       "title",
	"Author":      "author",
	"Genre":       "genre",
	"Description": "description",
	"CoverURL":    "coverUrl",
}

func check(v any) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		name, ok := fieldNames[fe.Field()]
		if !ok {
			name = fe.Field()
		}
		switch fe.Tag() {
		case "cover":
			ve.Fields[name] = "must be empty, a JPEG data URI or an http(s) URL"
		default:
			ve.Fields[name] = "is required"
		}
	}
	return ve
}

// Validate reports blank required fields and unsupported covers.
func (d Draft) Validate() error {
	return check(d)
}

// Validate checks b the same way as a Draft, plus the presence of an id.
func (b Book) Validate() error {
	return check(b)
}
