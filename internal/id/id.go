// Package id generates opaque unique identifiers for stored records.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes used for the entity types bexshelf stores. Keeping them here
// makes it obvious at a glance what kind of record an ID belongs to.
const (
	User           = "usr"
	Book           = "book"
	Journal        = "jrnl"
	Task           = "task"
	Note           = "note"
	QuickNote      = "qn"
	ReadingGoal    = "goal"
	WritingProject = "proj"
	VisionBoard    = "vb"
	VisionImage    = "img"
	Token          = "token"
)

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "book-V1StGXR8_Z5jdHi6B-myT").
//
// NanoIDs are URL-friendly and compact (21 characters vs UUID's 36),
// which matters since these IDs end up in upload filenames and URLs.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
// Use only where failure should crash the program (e.g., during initialization).
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
