package config

import (
	"fmt"
	"time"

	"github.com/larryhudson/claude-code-dev-starter/internal/glob"
)

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a Config for structural errors. It returns all validation
// errors found (empty if valid). Dispatch does not require a valid config,
// since it skips broken rules at match time, but `config validate` and
// `init` surface these to the user.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.Settings.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Settings.Timeout); err != nil {
			errs = append(errs, ValidationError{Field: "settings.timeout", Message: fmt.Sprintf("invalid duration %q", cfg.Settings.Timeout)})
		}
	}
	if cfg.Settings.MaxParallel < 0 {
		errs = append(errs, ValidationError{Field: "settings.max_parallel", Message: "must not be negative"})
	}

	seen := make(map[string]bool)
	for i, rule := range cfg.Checks {
		prefix := fmt.Sprintf("checks[%d]", i)

		if rule.Name == "" {
			errs = append(errs, ValidationError{Field: prefix + ".name", Message: "is required"})
		} else {
			if seen[rule.Name] {
				errs = append(errs, ValidationError{
					Field:   prefix + ".name",
					Message: fmt.Sprintf("duplicate check name %q", rule.Name),
				})
			}
			seen[rule.Name] = true
		}

		if len(rule.Patterns) == 0 {
			errs = append(errs, ValidationError{Field: prefix + ".patterns", Message: "at least one pattern is required"})
		}
		for _, pattern := range rule.Patterns {
			if err := glob.Check(pattern); err != nil {
				errs = append(errs, ValidationError{
					Field:   prefix + ".patterns",
					Message: fmt.Sprintf("malformed pattern %q", pattern),
				})
			}
		}

		if rule.Command == "" {
			errs = append(errs, ValidationError{Field: prefix + ".command", Message: "is required"})
		}

		if rule.Timeout != "" {
			if _, err := time.ParseDuration(rule.Timeout); err != nil {
				errs = append(errs, ValidationError{
					Field:   prefix + ".timeout",
					Message: fmt.Sprintf("invalid duration %q", rule.Timeout),
				})
			}
		}
	}

	return errs
}
