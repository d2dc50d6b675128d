package model

import "time"

// Question is a single catalog entry presented during an assessment.
// Text is unique among live questions; options are the selectable
// responses (typically a Likert scale).
type Question struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Text      string    `json:"text" bson:"text"`
	TextKey   string    `json:"-" bson:"textKey"` // normalized text, backs the unique index
	Options   []string  `json:"options" bson:"options"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Snapshot is an ordered, point-in-time view of the active catalog.
// It exists only to interpret ordinal answer keys for one submission
// and is never written to the document store.
type Snapshot struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
}
