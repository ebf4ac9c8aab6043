// Package defaults holds the default settings schema of the blog.
//
// Every known setting has a category, a default value and optional
// validations. Validations are expressed as go-playground/validator tags
// and checked with Validate before a value is written.
package defaults

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

//go:embed default-settings.json
var defaultSettingsJSON []byte

// Default is the schema entry of a single setting.
type Default struct {
	Key         string `json:"key"`
	Value       string `json:"defaultValue"`
	Type        string `json:"-"`
	Validations string `json:"validations,omitempty"`
}

type category struct {
	Type     string    `json:"type"`
	Settings []Default `json:"settings"`
}

// Schema is an ordered set of default settings.
type Schema struct {
	all   []Default
	index map[string]int
	v     *validator.Validate
}

var (
	permalinkRegex = regexp.MustCompile(`^(/:?[a-z0-9_-]+){1,5}/$`)

	schemaOnce sync.Once
	schema     *Schema
)

// Parse builds a Schema from its JSON representation.
func Parse(data []byte) (*Schema, error) {
	var categories []category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, errors.Wrap(err, "failed to decode default settings")
	}

	s := &Schema{
		index: make(map[string]int),
		v:     newValidator(),
	}

	for _, c := range categories {
		for _, d := range c.Settings {
			if _, exists := s.index[d.Key]; exists {
				return nil, fmt.Errorf("duplicate default setting %q", d.Key)
			}

			d.Type = c.Type
			s.index[d.Key] = len(s.all)
			s.all = append(s.all, d)
		}
	}

	return s, nil
}

// Load returns the embedded default settings schema.
func Load() *Schema {
	schemaOnce.Do(func() {
		var err error
		if schema, err = Parse(defaultSettingsJSON); err != nil {
			panic(err)
		}
	})

	return schema
}

// All returns every default in schema order.
func (s *Schema) All() []Default {
	out := make([]Default, len(s.all))
	copy(out, s.all)

	return out
}

// Lookup returns the default for key.
func (s *Schema) Lookup(key string) (Default, bool) {
	i, ok := s.index[key]
	if !ok {
		return Default{}, false
	}

	return s.all[i], true
}

// Validate checks value against the validations of key.
// Keys without a default or without validations always pass.
func (s *Schema) Validate(key, value string) error {
	d, ok := s.Lookup(key)
	if !ok || d.Validations == "" {
		return nil
	}

	if err := s.v.Var(value, d.Validations); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return fmt.Errorf("validation (%s) failed for %s", validationErrors[0].Tag(), key)
		}

		return errors.Wrapf(err, "validation failed for %s", key)
	}

	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("permalink", func(fl validator.FieldLevel) bool {
		return permalinkRegex.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("emptyorurl", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" || strings.HasPrefix(raw, "/") {
			return true
		}

		u, err := url.Parse(raw)

		return err == nil && u.Host != ""
	})

	_ = v.RegisterValidation("isint", isInt)

	return v
}

// isInt accepts a plain decimal integer, optionally bounded by a "min:max"
// param (either side may be empty).
func isInt(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" || strings.HasPrefix(raw, "+") {
		return false
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return false
	}

	lower, upper, _ := strings.Cut(fl.Param(), ":")

	if lower != "" {
		if minimum, err := strconv.Atoi(lower); err != nil || n < minimum {
			return false
		}
	}

	if upper != "" {
		if maximum, err := strconv.Atoi(upper); err != nil || n > maximum {
			return false
		}
	}

	return true
}
