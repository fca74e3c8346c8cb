// Package auth provides the HTTP layer for session based authentication,
// backed by the local credential store.
package auth

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"textlens/internal/api/models"
	authsvc "textlens/internal/auth"
	"textlens/internal/database"
)

// Provider handles login, registration and logout against the local user
// database and keeps the authenticated user in the cookie session.
type Provider struct {
	svc *authsvc.Service
	db  *database.Client
}

func NewProvider(svc *authsvc.Service, db *database.Client) *Provider {
	return &Provider{
		svc: svc,
		db:  db,
	}
}

func (p *Provider) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := p.svc.Register(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"success": true})
	case database.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, authsvc.ErrPasswordMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
	case errors.Is(err, database.ErrDuplicateUsername):
		c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
	default:
		log.Error("Failed to register user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
	}
}

func (p *Provider) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	ok, err := p.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		log.Error("Failed to verify credentials", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify credentials"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	user, err := p.db.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		log.Error("Failed to load user after login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	// Save user info in session
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("user_username", user.Username)
	session.Set("session_id", uuid.New().String())

	if err := session.Save(); err != nil {
		log.Error("Failed to save session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (p *Provider) Logout(c *gin.Context) {
	session := sessions.Default(c)
	username := getSessionString(session, "user_username")

	session.Clear()
	if err := session.Save(); err != nil {
		log.Error("Failed to clear session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
		return
	}

	p.svc.Logout(username)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (p *Provider) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		// create user model from session data
		user := &models.User{
			ID:       getSessionUint(session, "user_id"),
			Username: getSessionString(session, "user_username"),
		}

		c.Set("user_id", userID)
		c.Set("user", user)
		c.Next()
	}
}

// CurrentUser returns the user attached to the request by RequireAuth.
func CurrentUser(c *gin.Context) *models.User {
	if user, ok := c.Get("user"); ok {
		if u, ok := user.(*models.User); ok {
			return u
		}
	}
	return nil
}

func getSessionString(session sessions.Session, key string) string {
	if val := session.Get(key); val != nil {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getSessionUint(session sessions.Session, key string) uint {
	if val := session.Get(key); val != nil {
		if id, ok := val.(uint); ok {
			return id
		}
	}
	return 0
}
