// Package handler contains the JSON API handlers for text analysis,
// Reddit search and feedback submission.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"textlens/internal/analysis"
	apiauth "textlens/internal/api/auth"
	"textlens/internal/api/models"
	"textlens/internal/cache"
	"textlens/internal/classifier"
	"textlens/internal/database"
	"textlens/internal/reddit"
)

// TextClassifier is the part of the classifier the handlers need.
type TextClassifier interface {
	Classify(text string) (*classifier.Result, error)
}

// RedditSearcher fetches post titles for a search query.
type RedditSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]reddit.Post, error)
}

type Handler struct {
	db          *database.Client
	classifier  TextClassifier
	reddit      RedditSearcher
	searchCache *cache.SearchCache
	searchLimit int
}

func New(db *database.Client, clf TextClassifier, searcher RedditSearcher, searchCache *cache.SearchCache, searchLimit int) *Handler {
	return &Handler{
		db:          db,
		classifier:  clf,
		reddit:      searcher,
		searchCache: searchCache,
		searchLimit: searchLimit,
	}
}

// Me returns the authenticated user.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, apiauth.CurrentUser(c))
}

// Analyze classifies a piece of text for misinformation and sarcasm.
func (h *Handler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := h.classifier.Classify(req.Text)
	if err != nil {
		if errors.Is(err, classifier.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Text must not be empty"})
			return
		}
		log.Error("Failed to classify text", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to classify text"})
		return
	}

	c.JSON(http.StatusOK, models.AnalyzeResponse{
		Misinformation: result.Misinformation,
		Sarcasm:        result.Sarcasm,
		CleanedText:    result.CleanedText,
	})
}

// RedditSearch fetches post titles for a query and classifies each one.
// Upstream failures degrade to an empty result with a warning instead of
// failing the request.
func (h *Handler) RedditSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	// Callers may lower the post count, but never raise it above the
	// configured limit.
	limit := h.searchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'limit' must be a positive integer"})
			return
		}
		if n < limit {
			limit = n
		}
	}

	ctx := c.Request.Context()

	posts, ok := h.searchCache.Get(ctx, query, limit)
	if !ok {
		var err error
		posts, err = h.reddit.Search(ctx, query, limit)
		if err != nil {
			log.Warn("Reddit search failed", "query", query, "error", err)
			c.JSON(http.StatusOK, models.SearchResponse{
				Posts:   []models.SearchResultItem{},
				Warning: "Could not fetch posts from Reddit",
			})
			return
		}
		if err := h.searchCache.Set(ctx, query, limit, posts); err != nil {
			log.Warn("Failed to cache search results", "query", query, "error", err)
		}
	}

	items := make([]models.SearchResultItem, 0, len(posts))
	for _, post := range posts {
		result, err := h.classifier.Classify(post.Title)
		if err != nil {
			log.Debug("Skipping unclassifiable post", "title", post.Title, "error", err)
			continue
		}
		items = append(items, models.SearchResultItem{
			Title:          post.Title,
			Misinformation: result.Misinformation,
			Sarcasm:        result.Sarcasm,
		})
	}

	c.JSON(http.StatusOK, models.SearchResponse{Posts: items})
}

// Feedback stores a free-form feedback message.
func (h *Handler) Feedback(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.db.SubmitFeedback(c.Request.Context(), currentUsername(c), req.Text); err != nil {
		if database.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error("Failed to store feedback", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store feedback"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// AnalysisFeedback stores an analyzed text together with the optional
// linguistic payloads the client computed for it.
func (h *Handler) AnalysisFeedback(c *gin.Context) {
	var req models.AnalysisFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	payloads := analysisPayloads(req)
	cleaned := classifier.Clean(req.InputText)

	if err := h.db.SubmitAnalysisFeedback(c.Request.Context(), currentUsername(c), req.InputText, cleaned, payloads); err != nil {
		if database.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error("Failed to store analysis feedback", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store analysis feedback"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func analysisPayloads(req models.AnalysisFeedbackRequest) analysis.Payloads {
	return analysis.Payloads{
		POSTags:   req.POSTags,
		Sentiment: req.Sentiment,
		Topics:    req.Topics,
	}
}

func currentUsername(c *gin.Context) *string {
	if user := apiauth.CurrentUser(c); user != nil && user.Username != "" {
		return lo.ToPtr(user.Username)
	}
	return nil
}
