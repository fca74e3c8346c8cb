// Package analysis defines the typed auxiliary payloads that can accompany
// a piece of analysis feedback. Each payload has an explicit schema and is
// validated independently before it is serialized for storage.
package analysis

import (
	"fmt"
	"strings"
)

// POSTag is a single token/part-of-speech pair. A tagging is an ordered
// slice of these pairs.
type POSTag struct {
	Token string `json:"token"`
	Tag   string `json:"tag"`
}

// Validate checks that both token and tag are present.
func (t POSTag) Validate() error {
	if strings.TrimSpace(t.Token) == "" {
		return fmt.Errorf("pos tag token must not be empty")
	}
	if strings.TrimSpace(t.Tag) == "" {
		return fmt.Errorf("pos tag for token %q must not be empty", t.Token)
	}
	return nil
}

// Sentiment is a labeled sentiment score.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Validate checks the label and score range.
func (s Sentiment) Validate() error {
	if strings.TrimSpace(s.Label) == "" {
		return fmt.Errorf("sentiment label must not be empty")
	}
	if s.Score < -1 || s.Score > 1 {
		return fmt.Errorf("sentiment score %v out of range [-1, 1]", s.Score)
	}
	return nil
}

// Topic is a labeled topic with an optional weight.
type Topic struct {
	Label  string  `json:"label"`
	Weight float64 `json:"weight,omitempty"`
}

// Validate checks that the topic label is present.
func (t Topic) Validate() error {
	if strings.TrimSpace(t.Label) == "" {
		return fmt.Errorf("topic label must not be empty")
	}
	return nil
}

// Payloads bundles the auxiliary analysis results attached to a piece of
// feedback. Every field is optional; each is validated and persisted
// independently of the others.
type Payloads struct {
	POSTags   []POSTag   `json:"pos_tags,omitempty"`
	Sentiment *Sentiment `json:"sentiment,omitempty"`
	Topics    []Topic    `json:"topics,omitempty"`
}

// ValidatePOSTags validates an ordered tagging.
func ValidatePOSTags(tags []POSTag) error {
	for i, t := range tags {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("pos tag %d: %w", i, err)
		}
	}
	return nil
}

// ValidateTopics validates a set of topics.
func ValidateTopics(topics []Topic) error {
	for i, t := range topics {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("topic %d: %w", i, err)
		}
	}
	return nil
}
