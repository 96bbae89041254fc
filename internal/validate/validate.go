// Package validate provides input validation for the store layer.
//
// Validation happens at the store boundary (not just the service layer)
// because the store is the persistence boundary: anyone with direct store
// access (the web handlers, tests, future code paths) must have their
// inputs validated. Limits come in via options structs from config.
package validate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidName     = errors.New("invalid name")
	ErrNameTooLong     = errors.New("name too long")
	ErrInvalidSlug     = errors.New("invalid slug")
	ErrInvalidKind     = errors.New("invalid entity kind")
	ErrContentTooLarge = errors.New("document too large")
)

// Name validates an entity display name. Names must be non-empty after
// trimming and free of null bytes; maxLen of 0 means no limit.
func Name(name string, maxLen int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: null byte in name", ErrInvalidName)
	}
	if maxLen > 0 && len(name) > maxLen {
		return "", ErrNameTooLong
	}
	return name, nil
}

// Slug validates a derived slug: lower-case alphanumerics and hyphens only.
// An empty slug is rejected because it would produce the unresolvable link
// marker [[kind#]].
func Slug(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty slug", ErrInvalidSlug)
	}
	for _, r := range s {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidSlug, s)
		}
	}
	return nil
}

// Kind validates an entity kind for search filters and rename targets.
// "any" is permitted only where the caller says so.
func Kind(kind string, allowAny bool) error {
	switch kind {
	case "arc", "thing":
		return nil
	case "any":
		if allowAny {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
}

// Content enforces the serialized document size limit. maxLen of 0 means
// no limit (used by read paths).
func Content(blob string, maxLen int64) error {
	if maxLen > 0 && int64(len(blob)) > maxLen {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrContentTooLarge, len(blob), maxLen)
	}
	return nil
}
