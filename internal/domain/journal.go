package domain

// JournalPrivacy controls whether a journal is visible beyond its owner.
type JournalPrivacy string

const (
	JournalPrivacyPrivate JournalPrivacy = "private"
	JournalPrivacyPublic  JournalPrivacy = "public"
)

// IsValid reports whether the privacy value is recognized.
func (p JournalPrivacy) IsValid() bool {
	return p == JournalPrivacyPrivate || p == JournalPrivacyPublic
}

// Journal represents a journal's metadata record. The long-form body
// lives in a separate side-content file keyed by the journal's ID.
type Journal struct {
	Record
	Owned
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Cover       string         `json:"cover,omitempty"`
	Privacy     JournalPrivacy `json:"privacy"`
}
