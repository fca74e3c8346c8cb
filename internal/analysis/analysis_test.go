package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPOSTagValidate(t *testing.T) {
	tests := []struct {
		name    string
		tag     POSTag
		wantErr bool
	}{
		{name: "valid", tag: POSTag{Token: "cats", Tag: "NOUN"}},
		{name: "empty token", tag: POSTag{Tag: "NOUN"}, wantErr: true},
		{name: "empty tag", tag: POSTag{Token: "cats"}, wantErr: true},
		{name: "whitespace tag", tag: POSTag{Token: "cats", Tag: "  "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tag.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSentimentValidate(t *testing.T) {
	tests := []struct {
		name      string
		sentiment Sentiment
		wantErr   bool
	}{
		{name: "valid positive", sentiment: Sentiment{Label: "positive", Score: 0.8}},
		{name: "valid boundary", sentiment: Sentiment{Label: "negative", Score: -1}},
		{name: "empty label", sentiment: Sentiment{Score: 0.5}, wantErr: true},
		{name: "score too high", sentiment: Sentiment{Label: "positive", Score: 1.5}, wantErr: true},
		{name: "score too low", sentiment: Sentiment{Label: "negative", Score: -3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sentiment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePOSTags(t *testing.T) {
	assert.NoError(t, ValidatePOSTags(nil))
	assert.NoError(t, ValidatePOSTags([]POSTag{{Token: "cats", Tag: "NOUN"}}))

	err := ValidatePOSTags([]POSTag{{Token: "cats", Tag: "NOUN"}, {Token: ""}})
	assert.ErrorContains(t, err, "pos tag 1")
}

func TestValidateTopics(t *testing.T) {
	assert.NoError(t, ValidateTopics(nil))
	assert.NoError(t, ValidateTopics([]Topic{{Label: "politics", Weight: 0.7}}))

	err := ValidateTopics([]Topic{{Label: "  "}})
	assert.ErrorContains(t, err, "topic 0")
}
