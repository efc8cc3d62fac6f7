package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"academia/internal/apperr"
	"academia/internal/auth"
	"academia/internal/httpmiddleware"
	"academia/internal/users"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type profileRequest struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Email and password are required"))
		return
	}
	sess, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpmiddleware.AuthAttempts.WithLabelValues("login", "failure").Inc()
		h.fail(c, err)
		return
	}
	httpmiddleware.AuthAttempts.WithLabelValues("login", "success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   sess.Token.Value,
		"user":    sess.User,
	})
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Name, email, and password are required"))
		return
	}
	sess, err := h.Users.Register(c.Request.Context(), users.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httpmiddleware.AuthAttempts.WithLabelValues("register", "failure").Inc()
		h.fail(c, err)
		return
	}
	httpmiddleware.AuthAttempts.WithLabelValues("register", "success").Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   sess.Token.Value,
		"user":    sess.User,
	})
}

// ---------- Profile ----------

func (h *Handler) GetProfile(c *gin.Context) {
	u, _ := auth.CurrentUser(c)
	c.JSON(http.StatusOK, u)
}

// UpdateProfile accepts optional name and avatar; an empty body changes nothing.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(c, apperr.Validation("Invalid request body"))
		return
	}
	current, _ := auth.CurrentUser(c)
	updated, err := h.Users.UpdateProfile(c.Request.Context(), current, users.ProfileUpdate{
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}
