package domain

import "time"

// ProjectStatus tracks where a writing project is in its life.
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

// IsValid reports whether the status is one of the known phases.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

// WritingProject represents a long-form writing project. Its manuscript
// body lives in a notebook side-content file; CurrentWordCount mirrors
// that file's word count and only advances through the notebook save
// cascade, never through a plain update.
type WritingProject struct {
	Record
	Owned
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	Type             string        `json:"type"`
	Status           ProjectStatus `json:"status"`
	CurrentWordCount int           `json:"currentWordCount"`
	TargetWordCount  int           `json:"targetWordCount,omitempty"`
	Deadline         *time.Time    `json:"deadline,omitempty"`
}
