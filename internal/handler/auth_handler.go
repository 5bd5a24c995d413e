package handlers

import (
	"context"
	"log"
	"net/http"

	"helpdesk-app/internal/services"
	"helpdesk-app/internal/utils"

	"github.com/gin-gonic/gin"
)

// SessionManager issues and revokes sessions. Satisfied by utils.SessionStore.
type SessionManager interface {
	Create(ctx context.Context, userID, email string) (*utils.Session, error)
	Destroy(ctx context.Context, token string) error
}

type AuthHandler struct {
	authService *services.AuthService
	sessions    SessionManager
}

func NewAuthHandler(authService *services.AuthService, sessions SessionManager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req struct {
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required"`
		FirstName string `json:"firstName" validate:"required"`
		LastName  string `json:"lastName" validate:"required"`
		Phone     string `json:"phone" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := utils.ValidateRequest(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), userID, req.Email)
	if err != nil {
		// The account exists; the caller can still log in normally.
		log.Printf("failed to create session after signup: %v", err)
	} else {
		setSessionCookie(c, sess.Token)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"userId":  userID,
		"email":   req.Email,
		"role":    "user",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if err := utils.ValidateRequest(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, role, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	setSessionCookie(c, sess.Token)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"userId":  user.ID,
		"email":   user.Email,
		"role":    role,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(utils.SessionCookieName)
	if err == nil && token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			log.Printf("failed to destroy session: %v", err)
		}
	}
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) CheckAuth(c *gin.Context) {
	sess, ok := utils.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"isAuthenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"isAuthenticated": true,
		"userId":          sess.UserID,
		"email":           sess.Email,
		"role":            sess.Role,
	})
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, token, int(utils.SessionTTL.Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)
}
