package classifier

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"strings"
)

// Vectorizer maps cleaned text onto a TF-IDF feature vector. It is exported
// by the modeling pipeline as a gob artifact and treated as read-only here.
type Vectorizer struct {
	// Vocabulary maps a term to its feature index.
	Vocabulary map[string]int
	// IDF holds the inverse document frequency per feature index.
	IDF []float64
}

// Transform converts cleaned text into an L2-normalized TF-IDF vector.
func (v *Vectorizer) Transform(cleaned string) []float64 {
	vec := make([]float64, len(v.IDF))
	for _, term := range strings.Fields(cleaned) {
		if idx, ok := v.Vocabulary[term]; ok {
			vec[idx] += v.IDF[idx]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func (v *Vectorizer) validate() error {
	if len(v.IDF) == 0 {
		return fmt.Errorf("vectorizer has no features")
	}
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.IDF) {
			return fmt.Errorf("vocabulary index %d for term %q out of range", idx, term)
		}
	}
	return nil
}

// LinearModel is a binary linear classifier over the vectorizer's feature
// space. The positive class (label 1) means "fake" for the misinformation
// model and "sarcastic" for the sarcasm model.
type LinearModel struct {
	Weights []float64
	Bias    float64
}

// Predict returns 1 if the decision function is positive, 0 otherwise.
func (m *LinearModel) Predict(vec []float64) int {
	score := m.Bias
	for i, w := range m.Weights {
		score += w * vec[i]
	}
	if score > 0 {
		return 1
	}
	return 0
}

// LoadVectorizer reads a gob-encoded vectorizer artifact from disk.
func LoadVectorizer(path string) (*Vectorizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vectorizer artifact: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var v Vectorizer
	if err := gob.NewDecoder(f).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode vectorizer artifact %s: %w", path, err)
	}
	if err := v.validate(); err != nil {
		return nil, fmt.Errorf("invalid vectorizer artifact %s: %w", path, err)
	}
	return &v, nil
}

// LoadModel reads a gob-encoded linear model artifact from disk and checks
// that it matches the vectorizer's feature space.
func LoadModel(path string, vectorizer *Vectorizer) (*LinearModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model artifact: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var m LinearModel
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact %s: %w", path, err)
	}
	if len(m.Weights) != len(vectorizer.IDF) {
		return nil, fmt.Errorf("model artifact %s has %d weights, vectorizer has %d features",
			path, len(m.Weights), len(vectorizer.IDF))
	}
	return &m, nil
}
