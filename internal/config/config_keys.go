// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the MCP and CLI interface where config
// is accessed by string keys (e.g., "limits.max_content").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". This enables proper
// defaulting - we only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"server.listen",
		"database.path",
		"search.fuzzy", "search.limit",
		"limits.max_name", "limits.max_content",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "server.listen":
		return c.Listen(), nil
	case "database.path":
		return c.DBPath(), nil
	case "search.fuzzy":
		return strconv.FormatBool(c.FuzzyDefault()), nil
	case "search.limit":
		return strconv.Itoa(c.SearchLimit()), nil
	case "limits.max_name":
		return strconv.Itoa(c.MaxName()), nil
	case "limits.max_content":
		return strconv.FormatInt(c.MaxContent(), 10), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "server.listen":
		if value == "" {
			return fmt.Errorf("%w: server.listen must not be empty", ErrInvalidValue)
		}
		c.Server.Listen = &value
	case "database.path":
		if value == "" {
			return fmt.Errorf("%w: database.path must not be empty", ErrInvalidValue)
		}
		c.Database.Path = &value
	case "search.fuzzy":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: search.fuzzy must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Search.Fuzzy = &b
	case "search.limit":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: search.limit must be a positive integer", ErrInvalidValue)
		}
		c.Search.Limit = &n
	case "limits.max_name":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_name must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxName = &n
	case "limits.max_content":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_content must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxContent = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":        c.Author.Name,
		"author.email":       c.Author.Email,
		"server.listen":      c.Listen(),
		"database.path":      c.DBPath(),
		"search.fuzzy":       strconv.FormatBool(c.FuzzyDefault()),
		"search.limit":       strconv.Itoa(c.SearchLimit()),
		"limits.max_name":    strconv.Itoa(c.MaxName()),
		"limits.max_content": strconv.FormatInt(c.MaxContent(), 10),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "server.listen":
		return c.Server.Listen != nil
	case "database.path":
		return c.Database.Path != nil
	case "search.fuzzy":
		return c.Search.Fuzzy != nil
	case "search.limit":
		return c.Search.Limit != nil
	case "limits.max_name":
		return c.Limits.MaxName != nil
	case "limits.max_content":
		return c.Limits.MaxContent != nil
	default:
		return false
	}
}
