// Package id generates prefixed identifiers for directory records.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes used for generated identifiers.
const (
	BusinessPrefix = "biz"
	BuildingPrefix = "b"
	ZonePrefix     = "zone"
	CommentPrefix  = "cmt"
)

// Generator returns a fresh identifier for the given prefix.
type Generator func(prefix string) (string, error)

// Generate creates a prefixed NanoID, e.g. "cmt-V1StGXR8_Z5jdHi6B-myT".
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// Sequence returns a Generator that yields prefix-1, prefix-2, ... and is
// meant for deterministic tests.
func Sequence() Generator {
	next := 0
	return func(prefix string) (string, error) {
		next++
		return fmt.Sprintf("%s-%d", prefix, next), nil
	}
}
