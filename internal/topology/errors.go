package topology

import "fmt"

// ConfigError describes an invalid topology description.
type ConfigError struct {
	Field   string // Location in the document, e.g. "units[2].kind"
	Details string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("topology: %s: %s", e.Field, e.Details)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Details: fmt.Sprintf(format, args...)}
}
