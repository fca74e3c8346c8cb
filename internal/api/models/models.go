// Package models holds the request and response types of the JSON API.
package models

import "textlens/internal/analysis"

// User represents the authenticated user attached to a request.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeResponse holds the two labels for one piece of text.
type AnalyzeResponse struct {
	Misinformation bool   `json:"misinformation"`
	Sarcasm        bool   `json:"sarcasm"`
	CleanedText    string `json:"cleaned_text"`
}

// SearchResultItem is one fetched post title with its classifications.
type SearchResultItem struct {
	Title          string `json:"title"`
	Misinformation bool   `json:"misinformation"`
	Sarcasm        bool   `json:"sarcasm"`
}

// SearchResponse is the result of GET /api/reddit/search. Warning is set
// when the upstream fetch failed and the result list is empty because of it.
type SearchResponse struct {
	Posts   []SearchResultItem `json:"posts"`
	Warning string             `json:"warning,omitempty"`
}

// FeedbackRequest is the body of POST /api/feedback.
type FeedbackRequest struct {
	Text string `json:"text"`
}

// AnalysisFeedbackRequest is the body of POST /api/feedback/analysis.
// The payloads are optional and validated independently of each other.
type AnalysisFeedbackRequest struct {
	InputText string              `json:"input_text"`
	POSTags   []analysis.POSTag   `json:"pos_tags,omitempty"`
	Sentiment *analysis.Sentiment `json:"sentiment,omitempty"`
	Topics    []analysis.Topic    `json:"topics,omitempty"`
}
