package controllers

import (
	"os"

	"github.com/storecart/storecart/config"
	"github.com/storecart/storecart/models"
	"github.com/storecart/storecart/utils"
)

// EnsureSuperAdmin creates the bootstrap superadmin account from the
// environment if it does not exist yet.
func EnsureSuperAdmin() error {
	utils.LogInfo("EnsureSuperAdmin called")

	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogInfo("Superadmin credentials not configured, skipping bootstrap")
		return nil
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return utils.WrapError(err, "failed to hash superadmin password")
	}

	admin := models.User{
		Name:          "Super Admin",
		Email:         email,
		Password:      hashedPassword,
		Type:          models.UserTypeSuperAdmin,
		EmailVerified: true,
	}
	if err := config.DB.FirstOrCreate(&admin, models.User{Email: email}).Error; err != nil {
		return utils.WrapError(err, "failed to create superadmin")
	}
	return nil
}
