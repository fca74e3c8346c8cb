// Package classifier loads the pre-trained misinformation and sarcasm model
// artifacts and answers two independent binary classifications per text.
// The artifacts are loaded once at startup and are immutable afterwards, so
// a Classifier is safe for concurrent use.
package classifier

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"textlens/internal/config"
)

// ErrEmptyText is returned when the input is empty or whitespace-only.
// The models are never consulted for such input.
var ErrEmptyText = errors.New("text must not be empty")

// Result holds the two independent labels for one piece of text.
type Result struct {
	// Misinformation is true if the text is classified as fake.
	Misinformation bool
	// Sarcasm is true if the text is classified as sarcastic.
	Sarcasm bool
	// CleanedText is the normalized text that was actually classified.
	CleanedText string
}

// Classifier bundles the two vectorizer/model pairs.
type Classifier struct {
	misVectorizer *Vectorizer
	misModel      *LinearModel
	sarVectorizer *Vectorizer
	sarModel      *LinearModel
}

// New loads all four artifacts from the configured paths. A missing or
// corrupt artifact is a startup error, not a request-time error.
func New(cfg *config.ModelsConfig) (*Classifier, error) {
	misVec, err := LoadVectorizer(cfg.MisinformationVectorizer)
	if err != nil {
		return nil, fmt.Errorf("misinformation vectorizer: %w", err)
	}
	misModel, err := LoadModel(cfg.MisinformationModel, misVec)
	if err != nil {
		return nil, fmt.Errorf("misinformation model: %w", err)
	}
	sarVec, err := LoadVectorizer(cfg.SarcasmVectorizer)
	if err != nil {
		return nil, fmt.Errorf("sarcasm vectorizer: %w", err)
	}
	sarModel, err := LoadModel(cfg.SarcasmModel, sarVec)
	if err != nil {
		return nil, fmt.Errorf("sarcasm model: %w", err)
	}

	log.Info("classifier artifacts loaded",
		"misinformation_features", len(misVec.IDF),
		"sarcasm_features", len(sarVec.IDF))

	return &Classifier{
		misVectorizer: misVec,
		misModel:      misModel,
		sarVectorizer: sarVec,
		sarModel:      sarModel,
	}, nil
}

// Classify cleans the text and runs both classifications.
func (c *Classifier) Classify(text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	cleaned := Clean(text)
	return &Result{
		Misinformation: c.misModel.Predict(c.misVectorizer.Transform(cleaned)) == 1,
		Sarcasm:        c.sarModel.Predict(c.sarVectorizer.Transform(cleaned)) == 1,
		CleanedText:    cleaned,
	}, nil
}

// ClassifyFile reads a file and classifies its contents.
func (c *Classifier) ClassifyFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return c.Classify(string(data))
}
