package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/repository"
	"github.com/storecart/storecart/utils"
)

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Type     string `json:"type" binding:"omitempty,oneof=customer admin"`
}

// Register creates a new account and sends the verification email.
func Register(c *gin.Context) {
	utils.LogInfo("Register called")

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid registration request: %v", err)
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}
	if !utils.ValidatePhone(req.Phone) {
		utils.ValidationError(c, "Please provide a valid phone number")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	repo := repository.New[models.User](config.DB)
	if _, err := repo.FindOne(repository.Filter{"email": email}); err == nil {
		utils.LogError("Registration with existing email: %s", email)
		utils.Conflict(c, "Email already exists.")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to process registration")
		return
	}

	token, err := utils.GenerateVerificationToken()
	if err != nil {
		utils.LogError("Failed to generate verification token: %v", err)
		utils.InternalServerError(c, "Failed to process registration")
		return
	}

	userType := req.Type
	if userType == "" {
		userType = models.UserTypeCustomer
	}

	user := models.User{
		Name:                utils.SanitizeString(req.Name),
		Email:               email,
		Password:            hashed,
		Phone:               req.Phone,
		Type:                userType,
		VerificationToken:   token,
		VerificationExpires: time.Now().Add(24 * time.Hour),
	}

	if err := repo.Create(&user); err != nil {
		utils.LogError("Failed to create user %s: %v", email, err)
		utils.SendAppError(c, err)
		return
	}

	if err := utils.SendVerificationEmail(user.Email, token); err != nil {
		// Registration stands; the user can request another email.
		utils.LogError("Failed to send verification email to %s: %v", user.Email, err)
	}

	utils.LogInfo("User registered: %s (ID %d)", user.Email, user.ID)
	utils.Created(c, "Registration successful. Please verify your email.", gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"type":  user.Type,
	})
}

// VerifyEmail confirms the token from the verification link.
func VerifyEmail(c *gin.Context) {
	utils.LogInfo("VerifyEmail called")

	token := c.Query("token")
	if token == "" {
		utils.BadRequest(c, "Verification token is required")
		return
	}

	repo := repository.New[models.User](config.DB)
	user, err := repo.FindOne(repository.Filter{"verification_token": token})
	if err != nil {
		utils.LogError("Verification token not found")
		utils.BadRequest(c, "Invalid or expired verification token")
		return
	}

	if time.Now().After(user.VerificationExpires) {
		utils.LogError("Expired verification token for user ID: %d", user.ID)
		utils.BadRequest(c, "Invalid or expired verification token")
		return
	}

	err = repo.Updates(user.ID, map[string]interface{}{
		"email_verified":     true,
		"verification_token": "",
	})
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.LogInfo("Email verified for user ID: %d", user.ID)
	utils.Success(c, "Email verified successfully", nil)
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and issues a JWT.
func Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	repo := repository.New[models.User](config.DB)
	user, err := repo.FindOne(repository.Filter{"email": email})
	if err != nil {
		utils.LogError("Login attempt for unknown email: %s", email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Incorrect password for user ID: %d", user.ID)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if user.IsBlocked {
		utils.LogError("Blocked user attempted login: %d", user.ID)
		utils.Forbidden(c, "Account is blocked")
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.LogError("Failed to generate token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token")
		return
	}

	// Best effort; a failed timestamp update must not block login.
	if err := repo.Updates(user.ID, map[string]interface{}{"last_login_at": time.Now()}); err != nil {
		utils.LogError("Failed to record last login for user ID: %d: %v", user.ID, err)
	}

	utils.LogInfo("User logged in: %s (ID %d)", user.Email, user.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":             user.ID,
			"name":           user.Name,
			"email":          user.Email,
			"type":           user.Type,
			"email_verified": user.EmailVerified,
		},
	})
}
