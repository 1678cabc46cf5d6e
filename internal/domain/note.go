package domain

import "strings"

// Note represents a free-form note with optional tags and pinning.
type Note struct {
	Record
	Owned
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	IsPinned bool     `json:"isPinned"`
	Tags     []string `json:"tags"`
}

// Matches reports whether the note matches a case-insensitive substring
// query across title, content, and tags.
func (n *Note) Matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
