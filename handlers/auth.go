package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"journeatz-api/auth"
	"journeatz-api/models"
	"journeatz-api/session"
	"journeatz-api/storage"
)

// AuthHandler exposes register/login/logout/session over the auth service.
// The session manager it hands out is the only source of session state; no
// path fabricates one.
type AuthHandler struct {
	Svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account. The role rides along as token metadata so
// a later session check derives it back.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mgr := session.NewManager(h.Svc)
	defer mgr.Close()
	state, token, err := mgr.Signup(req.Email, req.Password, req.Role, req.Name)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user":    state.User,
	})
}

// Login authenticates a user and returns a JWT. Provider-style failures come
// back as distinct statuses, never as a silently faked session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mgr := session.NewManager(h.Svc)
	defer mgr.Close()
	state, token, err := mgr.Login(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    state.User,
	})
}

// Logout broadcasts the sign-out. Tokens are stateless; clients drop theirs.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Svc.SignOut()
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Session derives session state from the bearer token, if any. Always 200:
// no session is a valid, unauthenticated answer.
func (h *AuthHandler) Session(c *gin.Context) {
	mgr := session.NewManager(h.Svc)
	defer mgr.Close()

	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" || token == c.GetHeader("Authorization") {
		c.JSON(http.StatusOK, session.State{})
		return
	}
	state, err := mgr.Resume(token)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetProfile returns the authenticated user's row.
func GetProfile(c *gin.Context) {
	userID := mwUserID(c)
	user, err := storage.Current().GetUser(userID)
	if err != nil {
		respondStoreError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "kind": "InvalidCredentials"})
	case errors.Is(err, auth.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error(), "kind": "RateLimited"})
	case errors.Is(err, auth.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "AccountExists"})
	case errors.Is(err, auth.ErrEmailUnconfirmed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "kind": "EmailUnconfirmed"})
	case errors.Is(err, models.ErrUnknownRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "UnknownRole"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
