// Package api assembles the HTTP server: session middleware, auth routes
// and the JSON API.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"textlens/internal/api/auth"
	"textlens/internal/api/handler"
	"textlens/internal/cache"
	authsvc "textlens/internal/auth"
	"textlens/internal/classifier"
	"textlens/internal/config"
	"textlens/internal/database"
	"textlens/internal/reddit"
)

type Server struct {
	cfg          *config.Config
	ginEngine    *gin.Engine
	authProvider *auth.Provider
	handler      *handler.Handler
	searchCache  *cache.SearchCache
}

func New(cfg *config.Config, db *database.Client, svc *authsvc.Service, clf *classifier.Classifier, redditClient *reddit.Client, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	searchCache := cache.NewSearchCache(cfg.Cache)

	s := &Server{
		cfg:          cfg,
		ginEngine:    gin.Default(),
		authProvider: auth.NewProvider(svc, db),
		handler:      handler.New(db, clf, redditClient, searchCache, cfg.Reddit.SearchLimit),
		searchCache:  searchCache,
	}

	s.subscribeAuthEvents(svc.Events())

	return s, nil
}

// subscribeAuthEvents logs auth state transitions and drops cached search
// results when a user logs out.
func (s *Server) subscribeAuthEvents(events *authsvc.Broadcaster) {
	events.Subscribe(func(e authsvc.Event) {
		log.Info("auth state changed", "event", e.Type, "username", e.Username)

		if e.Type == authsvc.EventLoggedOut {
			if err := s.searchCache.Clear(context.Background()); err != nil {
				log.Warn("Failed to clear search cache", "error", err)
			}
		}
	})
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("textlens_session", store))
}

func (s *Server) setupRoutes() {
	s.setupSession()
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))

	s.ginEngine.POST("/auth/register", s.authProvider.Register)
	s.ginEngine.POST("/auth/login", s.authProvider.Login)

	protected := s.ginEngine.Group("/")
	protected.Use(s.authProvider.RequireAuth())

	protected.POST("/auth/logout", s.authProvider.Logout)

	// API routes
	api := protected.Group("/api")
	api.GET("/me", s.handler.Me)
	api.POST("/analyze", s.handler.Analyze)
	api.GET("/reddit/search", s.handler.RedditSearch)
	api.POST("/feedback", s.handler.Feedback)
	api.POST("/feedback/analysis", s.handler.AnalysisFeedback)
}

func (s *Server) Run() error {
	s.setupRoutes()

	return s.ginEngine.Run(s.cfg.Listen)
}
