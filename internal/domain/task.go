package domain

// TaskStatus is the kanban column a task sits in.
type TaskStatus string

const (
	TaskStatusTodo  TaskStatus = "todo"
	TaskStatusDoing TaskStatus = "doing"
	TaskStatusDone  TaskStatus = "done"
)

// IsValid reports whether the status is one of the three columns.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusDoing, TaskStatusDone:
		return true
	}
	return false
}

// Task represents a planned item with a due date.
// DueDate is a calendar date string (YYYY-MM-DD), not a timestamp; the
// planner groups tasks by day and never cares about time of day.
type Task struct {
	Record
	Owned
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	DueDate     string     `json:"dueDate"`
}

// TaskStats summarizes a user's planner.
type TaskStats struct {
	Total       int            `json:"total"`
	Todo        int            `json:"todo"`
	Doing       int            `json:"doing"`
	Done        int            `json:"done"`
	TasksByDate map[string]int `json:"tasksByDate"`
}
