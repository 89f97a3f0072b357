// pkg/config/target.go
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

var validate = validator.New()

// ValidateTargets checks structural validity of the configured targets and
// rejects duplicate names. Target names are the sole lookup key for batch
// fan-out, so duplicates would make resolution ambiguous.
func ValidateTargets(targets []Target) error {
	seen := make(map[string]struct{}, len(targets))
	for i, target := range targets {
		if err := validate.Struct(target); err != nil {
			return fmt.Errorf("target[%d] %q: %w", i, target.Name, err)
		}
		if _, dup := seen[target.Name]; dup {
			return fmt.Errorf("duplicate target name %q", target.Name)
		}
		seen[target.Name] = struct{}{}
	}
	return nil
}

// FindTarget returns the target with the given name, if configured.
func FindTarget(targets []Target, name string) (*Target, bool) {
	for i := range targets {
		if targets[i].Name == name {
			return &targets[i], true
		}
	}
	return nil, false
}

// OptionBool coerces a backend-specific option to bool. Missing keys return
// the fallback.
func (t *Target) OptionBool(key string, fallback bool) bool {
	raw, ok := t.Options[key]
	if !ok {
		return fallback
	}
	return cast.ToBool(raw)
}

// OptionString coerces a backend-specific option to string. Missing keys
// return the fallback.
func (t *Target) OptionString(key, fallback string) string {
	raw, ok := t.Options[key]
	if !ok {
		return fallback
	}
	return cast.ToString(raw)
}

// OptionStringSlice coerces a backend-specific option to a string slice.
func (t *Target) OptionStringSlice(key string) []string {
	raw, ok := t.Options[key]
	if !ok {
		return nil
	}
	return cast.ToStringSlice(raw)
}
