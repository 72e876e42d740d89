package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure.
type ValidationError struct {
	Field   string // The config key (e.g., "mcp.port")
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidFormats returns the accepted line runner formats.
func ValidFormats() []string {
	return []string{"text", "json"}
}

// ValidTransports returns the accepted MCP transports.
func ValidTransports() []string {
	return []string{"stdio", "sse"}
}

// Validate checks the Config for invalid values and returns every failure found.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(c.Story) == "" {
		errs = append(errs, ValidationError{Field: "story", Value: c.Story, Message: "must not be empty"})
	}
	if !slices.Contains(ValidFormats(), c.Format) {
		errs = append(errs, ValidationError{
			Field:   "format",
			Value:   c.Format,
			Message: fmt.Sprintf("must be one of %s", strings.Join(ValidFormats(), ", ")),
		})
	}
	if c.HTTP.Addr == "" {
		errs = append(errs, ValidationError{Field: "http.addr", Value: c.HTTP.Addr, Message: "must not be empty"})
	}
	if c.HTTP.SessionTTL < 0 {
		errs = append(errs, ValidationError{Field: "http.session_ttl", Value: c.HTTP.SessionTTL, Message: "must not be negative"})
	}
	if c.Redis.DB < 0 {
		errs = append(errs, ValidationError{Field: "redis.db", Value: c.Redis.DB, Message: "must be non-negative"})
	}
	if !slices.Contains(ValidTransports(), c.MCP.Transport) {
		errs = append(errs, ValidationError{
			Field:   "mcp.transport",
			Value:   c.MCP.Transport,
			Message: fmt.Sprintf("must be one of %s", strings.Join(ValidTransports(), ", ")),
		})
	}
	if c.MCP.Port < 1 || c.MCP.Port > 65535 {
		errs = append(errs, ValidationError{Field: "mcp.port", Value: c.MCP.Port, Message: "must be between 1 and 65535"})
	}

	return errs
}
