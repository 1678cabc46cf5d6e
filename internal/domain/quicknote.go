package domain

import "strings"

const (
	// MaxQuickNotesPerUser caps how many sticky notes a user can have live at once.
	MaxQuickNotesPerUser = 8
	// MaxQuickNoteWords caps the length of a sticky note's content.
	MaxQuickNoteWords = 15
)

// QuickNote is a short sticky-note-style reminder.
type QuickNote struct {
	Record
	Owned
	Content string `json:"content"`
	Color   string `json:"color"`
}

// WordCount counts whitespace-separated tokens in a quick note's content.
func WordCount(content string) int {
	return len(strings.Fields(content))
}
