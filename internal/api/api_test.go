package api

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"textlens/internal/api/models"
	"textlens/internal/auth"
	"textlens/internal/classifier"
	"textlens/internal/config"
	"textlens/internal/database"
	"textlens/internal/reddit"
)

type ServerTestSuite struct {
	suite.Suite
	server *Server
}

func (s *ServerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	dir := s.T().TempDir()
	cfg := &config.Config{
		Listen:        "127.0.0.1:0",
		SessionKey:    "test-secret",
		SessionMaxAge: 3600,
		Database:      &config.DatabaseConfig{Path: filepath.Join(dir, "test.db")},
		Models:        s.writeModels(dir),
		Reddit:        &config.RedditConfig{URL: "http://127.0.0.1:1", UserAgent: "test", SearchLimit: 5},
		Cache:         &config.CacheConfig{Type: config.CacheTypeMemory},
	}

	db, err := database.New(cfg.Database.Path)
	require.NoError(s.T(), err)

	clf, err := classifier.New(cfg.Models)
	require.NoError(s.T(), err)

	server, err := New(cfg, db, auth.New(db), clf, reddit.New(cfg.Reddit), true)
	require.NoError(s.T(), err)
	server.setupRoutes()
	s.server = server
}

// writeModels creates minimal gob artifacts. The misinformation model fires
// on the term "fake", the sarcasm model on "sure".
func (s *ServerTestSuite) writeModels(dir string) *config.ModelsConfig {
	vectorizer := classifier.Vectorizer{
		Vocabulary: map[string]int{"fake": 0, "sure": 1},
		IDF:        []float64{1, 1},
	}
	misModel := classifier.LinearModel{Weights: []float64{1, 0}, Bias: -0.1}
	sarModel := classifier.LinearModel{Weights: []float64{0, 1}, Bias: -0.1}

	cfg := &config.ModelsConfig{
		MisinformationVectorizer: filepath.Join(dir, "mis_vec.gob"),
		MisinformationModel:      filepath.Join(dir, "mis_model.gob"),
		SarcasmVectorizer:        filepath.Join(dir, "sar_vec.gob"),
		SarcasmModel:             filepath.Join(dir, "sar_model.gob"),
	}
	s.writeArtifact(cfg.MisinformationVectorizer, vectorizer)
	s.writeArtifact(cfg.MisinformationModel, misModel)
	s.writeArtifact(cfg.SarcasmVectorizer, vectorizer)
	s.writeArtifact(cfg.SarcasmModel, sarModel)
	return cfg
}

func (s *ServerTestSuite) writeArtifact(path string, value any) {
	f, err := os.Create(path)
	require.NoError(s.T(), err)
	defer f.Close() //nolint:errcheck
	require.NoError(s.T(), gob.NewEncoder(f).Encode(value))
}

func (s *ServerTestSuite) jsonRequest(method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(s.T(), err)

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.server.ginEngine.ServeHTTP(w, req)
	return w
}

func (s *ServerTestSuite) login(username, password string) []*http.Cookie {
	w := s.jsonRequest("POST", "/auth/register", gin.H{
		"username":         username,
		"password":         password,
		"confirm_password": password,
	}, nil)
	require.Equal(s.T(), http.StatusCreated, w.Code)

	w = s.jsonRequest("POST", "/auth/login", gin.H{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func (s *ServerTestSuite) TestAnalyzeRequiresAuth() {
	w := s.jsonRequest("POST", "/api/analyze", models.AnalyzeRequest{Text: "hello"}, nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *ServerTestSuite) TestFullAnalyzeFlow() {
	cookies := s.login("alice", "secret1")

	w := s.jsonRequest("POST", "/api/analyze", models.AnalyzeRequest{
		Text: "Yeah, SURE, that's a totally fake story.",
	}, cookies)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var resp models.AnalyzeResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(s.T(), resp.Misinformation)
	assert.True(s.T(), resp.Sarcasm)
}

func (s *ServerTestSuite) TestMe() {
	cookies := s.login("alice", "secret1")

	w := s.jsonRequest("GET", "/api/me", nil, cookies)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "alice")
}

func (s *ServerTestSuite) TestLogoutInvalidatesSession() {
	cookies := s.login("alice", "secret1")

	logout := s.jsonRequest("POST", "/auth/logout", nil, cookies)
	require.Equal(s.T(), http.StatusOK, logout.Code)

	w := s.jsonRequest("GET", "/api/me", nil, logout.Result().Cookies())
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *ServerTestSuite) TestFeedback() {
	cookies := s.login("alice", "secret1")

	w := s.jsonRequest("POST", "/api/feedback", models.FeedbackRequest{Text: "nice tool"}, cookies)
	assert.Equal(s.T(), http.StatusCreated, w.Code)
}

func (s *ServerTestSuite) TestNewRequiresConfig() {
	_, err := New(nil, nil, nil, nil, nil, true)
	assert.Error(s.T(), err)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
