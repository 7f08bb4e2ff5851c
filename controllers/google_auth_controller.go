package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/utils"
)

// GoogleUserInfo is the profile returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleLogin redirects to Google's consent screen.
func GoogleLogin(c *gin.Context) {
	url := config.GoogleOAuthConfig.AuthCodeURL("state")
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback exchanges the OAuth code, upserts the user and redirects
// back to the frontend with a JWT.
func GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided")
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c, code)
	if err != nil {
		utils.LogError("Failed to exchange OAuth code: %v", err)
		utils.InternalServerError(c, "Failed to exchange token")
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		utils.InternalServerError(c, "Failed to get user info")
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.InternalServerError(c, "Failed to read response")
		return
	}

	var googleUser GoogleUserInfo
	if err := json.Unmarshal(data, &googleUser); err != nil {
		utils.InternalServerError(c, "Failed to parse user info")
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", googleUser.Email).First(&user).Error; err != nil {
		// First Google login creates the account with an unusable random
		// password; the email is already verified by Google.
		randomSecret, err := utils.GenerateVerificationToken()
		if err != nil {
			utils.InternalServerError(c, "Failed to create user")
			return
		}
		hashed, err := utils.HashPassword(randomSecret)
		if err != nil {
			utils.InternalServerError(c, "Failed to create user")
			return
		}

		user = models.User{
			Name:          googleUser.Name,
			Email:         googleUser.Email,
			Password:      hashed,
			Avatar:        googleUser.Picture,
			Type:          models.UserTypeCustomer,
			EmailVerified: true,
			GoogleID:      googleUser.ID,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			utils.LogError("Failed to create Google user %s: %v", googleUser.Email, err)
			utils.InternalServerError(c, "Failed to create user")
			return
		}
		utils.LogInfo("Created user from Google login: %s (ID %d)", user.Email, user.ID)
	}

	jwtToken, err := utils.GenerateToken(&user)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token")
		return
	}

	redirectURL := fmt.Sprintf("%s?token=%s&user=%s",
		os.Getenv("FRONTEND_URL"),
		url.QueryEscape(jwtToken),
		url.QueryEscape(fmt.Sprintf(`{"id":%d,"email":"%s","name":"%s"}`,
			user.ID, user.Email, user.Name)))

	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
