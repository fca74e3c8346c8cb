package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"textlens/internal/analysis"
)

// Feedback is a general free-text comment submitted by a user.
// Records are append-only; CreatedAt is assigned by the store at write time
// and never changes.
type Feedback struct {
	gorm.Model
	Username *string
	Text     string `gorm:"not null"`
}

// AnalysisFeedback is a structured feedback record tied to a single analysis.
// The auxiliary payloads are stored as serialized JSON columns; a payload
// that could not be serialized is left NULL without blocking the others.
type AnalysisFeedback struct {
	gorm.Model
	Username      *string
	InputText     string `gorm:"not null"`
	CleanedText   string
	POSTagsJSON   *string
	SentimentJSON *string
	TopicsJSON    *string
}

// SubmitFeedback appends a general feedback record. Empty or whitespace-only
// text is rejected with a ValidationError and nothing is stored.
func (c *Client) SubmitFeedback(ctx context.Context, username *string, text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "feedback", Reason: "must not be empty"}
	}

	fb := Feedback{
		Username: username,
		Text:     text,
	}
	if err := c.db.WithContext(ctx).Create(&fb).Error; err != nil {
		log.Error("failed to save feedback", "error", err)
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// SubmitAnalysisFeedback appends a structured feedback record. Each payload is
// validated and serialized independently; a failing payload is logged and
// stored as NULL while the remaining ones are still persisted.
func (c *Client) SubmitAnalysisFeedback(ctx context.Context, username *string, inputText, cleanedText string, payloads analysis.Payloads) error {
	if strings.TrimSpace(inputText) == "" {
		return &ValidationError{Field: "input text", Reason: "must not be empty"}
	}

	fb := AnalysisFeedback{
		Username:    username,
		InputText:   inputText,
		CleanedText: cleanedText,
	}

	if len(payloads.POSTags) > 0 {
		if err := analysis.ValidatePOSTags(payloads.POSTags); err != nil {
			log.Warn("skipping pos tags payload", "error", err)
		} else if data, err := json.Marshal(payloads.POSTags); err != nil {
			log.Warn("failed to serialize pos tags payload", "error", err)
		} else {
			s := string(data)
			fb.POSTagsJSON = &s
		}
	}

	if payloads.Sentiment != nil {
		if err := payloads.Sentiment.Validate(); err != nil {
			log.Warn("skipping sentiment payload", "error", err)
		} else if data, err := json.Marshal(payloads.Sentiment); err != nil {
			log.Warn("failed to serialize sentiment payload", "error", err)
		} else {
			s := string(data)
			fb.SentimentJSON = &s
		}
	}

	if len(payloads.Topics) > 0 {
		if err := analysis.ValidateTopics(payloads.Topics); err != nil {
			log.Warn("skipping topics payload", "error", err)
		} else if data, err := json.Marshal(payloads.Topics); err != nil {
			log.Warn("failed to serialize topics payload", "error", err)
		} else {
			s := string(data)
			fb.TopicsJSON = &s
		}
	}

	if err := c.db.WithContext(ctx).Create(&fb).Error; err != nil {
		log.Error("failed to save analysis feedback", "error", err)
		return fmt.Errorf("failed to save analysis feedback: %w", err)
	}
	return nil
}
