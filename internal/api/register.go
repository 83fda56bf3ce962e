package api

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gridbill/gridbill/internal/auth"
	"github.com/gridbill/gridbill/internal/store"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegistrationRequest is the POST /register payload.
type RegistrationRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Role         string `json:"role"`
	IntendedUse  string `json:"intendedUse"`
}

// RegistrationResponse is the POST /register reply. Success responses
// carry the token and the user record without its session token; error
// responses carry only the error message.
type RegistrationResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token,omitempty"`
	User    *store.User `json:"user,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Register creates or refreshes a user record and hands out a session
// token.
// POST /register
func (h *Handler) Register(c *gin.Context) {
	if h.users == nil || h.tokens == nil {
		c.JSON(http.StatusInternalServerError, RegistrationResponse{Error: "registration is temporarily unavailable"})
		return
	}

	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, RegistrationResponse{Error: "invalid request body"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	organization := strings.TrimSpace(req.Organization)
	if email == "" || name == "" || organization == "" {
		c.JSON(http.StatusBadRequest, RegistrationResponse{Error: "email, name, and organization are required"})
		return
	}
	if !emailPattern.MatchString(email) {
		c.JSON(http.StatusBadRequest, RegistrationResponse{Error: fmt.Sprintf("invalid email address %q", email)})
		return
	}

	now := time.Now().UTC()
	message := "Welcome back"
	user, err := h.users.FindByEmail(email)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		dom := auth.EmailDomain(email)
		user = store.User{
			ID:           uuid.New().String(),
			Email:        email,
			CreatedAt:    now,
			Domain:       dom,
			AutoApproved: auth.AutoApprove(dom),
			Status:       "active",
		}
		message = "Registration successful"
	case err != nil:
		c.JSON(http.StatusInternalServerError, RegistrationResponse{Error: "registration is temporarily unavailable"})
		return
	}

	user.Name = name
	user.Organization = organization
	user.Role = strings.TrimSpace(req.Role)
	user.IntendedUse = strings.TrimSpace(req.IntendedUse)
	user.UpdatedAt = now
	user.LastAccessAt = now
	user.AccessCount++

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, RegistrationResponse{Error: "registration is temporarily unavailable"})
		return
	}
	user.SessionToken = token

	if err := h.users.Upsert(user); err != nil {
		c.JSON(http.StatusInternalServerError, RegistrationResponse{Error: "registration is temporarily unavailable"})
		return
	}

	public := user
	public.SessionToken = ""
	c.JSON(http.StatusOK, RegistrationResponse{
		Success: true,
		Token:   token,
		User:    &public,
		Message: message,
	})
}
