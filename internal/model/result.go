package model

import "time"

// TraitCount is the fixed length of an evaluation score vector.
const TraitCount = 5

// AnswerSet is a raw submission: ordinal keys of the form "q<index>"
// mapped to the chosen response value.
type AnswerSet map[string]string

// AnswerMap is a resolved submission keyed by question text.
type AnswerMap map[string]string

// Evaluation is the typed outcome of one provider call. Scores holds
// one 0-100 rating per trait.
type Evaluation struct {
	Text   string `json:"evaluation" bson:"evaluation"`
	Scores []int  `json:"scores" bson:"scores"`
}

// Result is the single stored record for one identity: the latest
// resolved answers plus, once attached, their evaluation. A new
// submission replaces the previous record wholesale.
type Result struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Email      string    `json:"email" bson:"email"`
	Answers    AnswerMap `json:"answers" bson:"answers"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	Evaluation string    `json:"evaluation,omitempty" bson:"evaluation,omitempty"`
	Scores     []int     `json:"scores,omitempty" bson:"scores,omitempty"`
}
