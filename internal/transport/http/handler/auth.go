package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"studiosync/internal/app"
	"studiosync/internal/model"
	"studiosync/internal/transport/http/middleware"
	"studiosync/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Username    string `json:"username" binding:"required,min=3,max=100"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Avatar      *string `json:"avatar"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, bindingDetails(err))
		return
	}

	result, err := h.authService.Register(app.RegisterInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput),
			errors.Is(err, app.ErrEmailExists),
			errors.Is(err, app.ErrUsernameExists):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	response.Created(c, gin.H{
		"user":  userView(result.User, false),
		"token": result.Token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, bindingDetails(err))
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidCredential), errors.Is(err, app.ErrAccountDisabled):
			response.Error(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	response.OK(c, gin.H{
		"user":  userView(result.User, false),
		"token": result.Token,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get user info")
		return
	}
	if user == nil {
		response.Error(c, http.StatusNotFound, "User not found")
		return
	}

	response.OK(c, gin.H{"user": userView(user, true)})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, bindingDetails(err))
		return
	}

	user, err := h.authService.UpdateProfile(userID, req.DisplayName, req.Avatar)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	response.OK(c, gin.H{"user": userView(user, true)})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized: missing identity")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, bindingDetails(err))
		return
	}

	if err := h.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidPassword):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "New password too short")
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to change password")
		}
		return
	}

	response.Message(c, "Password changed successfully")
}

func userView(user *model.User, withLastLogin bool) gin.H {
	view := gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"username":    user.Username,
		"displayName": user.DisplayName,
		"avatar":      user.Avatar,
		"createdAt":   user.CreatedAt,
	}
	if withLastLogin {
		view["lastLoginAt"] = user.LastLoginAt
	}
	return view
}

// bindingDetails flattens gin binding failures into per-field messages.
func bindingDetails(err error) interface{} {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []gin.H{{"message": err.Error()}}
	}
	details := make([]gin.H, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, gin.H{
			"field":   fe.Field(),
			"message": fe.Tag(),
		})
	}
	return details
}
