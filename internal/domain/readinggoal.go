package domain

// ReadingGoal is a per-user, per-year reading target.
// At most one goal per (user, year) may be active; creating or
// activating a goal deactivates the others for that year.
type ReadingGoal struct {
	Record
	Owned
	TargetBooks int  `json:"targetBooks"`
	TargetPages int  `json:"targetPages,omitempty"`
	Year        int  `json:"year"`
	IsActive    bool `json:"isActive"`
}
