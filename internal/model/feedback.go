package model

import "time"

// Feedback is one append-only entry left by a visitor after an
// assessment. Rating is optional; zero means not given.
type Feedback struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Email     string    `json:"email" bson:"email"`
	Rating    int       `json:"rating,omitempty" bson:"rating,omitempty"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
