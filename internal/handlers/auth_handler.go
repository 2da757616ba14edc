package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
	"github.com/arnelectric/storefront-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Users repository.UserRepository
}

func NewAuthHandler(users repository.UserRepository) *AuthHandler {
	return &AuthHandler{Users: users}
}

// sanitizedUser is what goes over the wire; the password hash never does.
func sanitizedUser(user models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"phone": user.Phone,
		"role":  user.Role,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to process password"))
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        input.Phone,
		PasswordHash: hash,
		Role:         "customer",
		CreatedAt:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			c.JSON(http.StatusConflict, utils.ErrorResponse("Email already registered"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to create account"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to issue token"))
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse("Account created successfully", gin.H{
		"user":  sanitizedUser(user),
		"token": token,
	}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.Users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil || !utils.CheckPassword(user.PasswordHash, input.Password) {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse("Invalid email or password"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to issue token"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Logged in successfully", gin.H{
		"user":  sanitizedUser(user),
		"token": token,
	}))
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := c.Get("userId")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := h.Users.GetUserByID(ctx, userID.(string))
	if err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse("Account not found"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Account fetched successfully", gin.H{
		"user": sanitizedUser(user),
	}))
}
