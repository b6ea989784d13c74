// Package idgen generates identifiers for groups, items and roster entries.
package idgen

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator produces unique string identifiers.
type Generator func() string

// Prefixes scope identifiers by record kind.
const (
	GroupPrefix  = "g-"
	ItemPrefix   = "item-"
	PersonPrefix = "p-"
)

// UUIDv7 returns a Generator of time-sortable RFC 9562 UUID v7 strings.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Prefixed prepends prefix to every ID produced by gen.
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + gen()
	}
}

// Default is the generator used when none is injected.
var Default Generator = UUIDv7()

// New produces an ID using Default.
func New() string {
	return Default()
}

// Parse validates the UUID part of id, ignoring a known prefix.
func Parse(id string) (string, error) {
	raw := id
	for _, prefix := range []string{GroupPrefix, ItemPrefix, PersonPrefix} {
		if len(raw) > len(prefix) && raw[:len(prefix)] == prefix {
			raw = raw[len(prefix):]
			break
		}
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("idgen: invalid id %q: %w", id, err)
	}
	return u.String(), nil
}
