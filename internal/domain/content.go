package domain

import "time"

// DefaultContentTheme is the editor theme applied when none was saved.
const DefaultContentTheme = "classic"

// SideContent is the large free-text body associated with a journal or
// writing project, stored in its own file keyed by the parent's ID and
// living independently of the parent's metadata record.
type SideContent struct {
	Content   string    `json:"content"`
	WordCount int       `json:"wordCount"`
	Theme     string    `json:"theme"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EmptySideContent is what callers see when no content was ever saved.
func EmptySideContent() *SideContent {
	return &SideContent{Content: "", WordCount: 0, Theme: DefaultContentTheme}
}
