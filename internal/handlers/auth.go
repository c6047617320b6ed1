package handlers

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Fuku-x/connect-app/internal/database"
	"github.com/Fuku-x/connect-app/internal/models"
	"github.com/Fuku-x/connect-app/pkg/logger"
	"github.com/Fuku-x/connect-app/pkg/utils"
)

// Registration is limited to school accounts.
var studentEmailPattern = regexp.MustCompile(`(?i)^[^@\s]+@st\.kobedenshi\.ac\.jp$`)

// Passwords follow the school portal convention: 8+ half-width alphanumerics.
var passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9]{8,}$`)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !studentEmailPattern.MatchString(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A Kobe Denshi school email (@st.kobedenshi.ac.jp) is required"})
		return
	}

	if !passwordPattern.MatchString(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters of half-width letters and numbers"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
	}

	if result := database.DB.Create(&user); result.Error != nil {
		var existing models.User
		if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists. Please sign in instead."})
			return
		}

		logger.Warn().Err(result.Error).Str("email", input.Email).Msg("Registration failed")
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create account"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User registered")

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if result := database.DB.Where("email = ?", input.Email).First(&user); result.Error != nil {
		logger.Warn().Str("email", input.Email).Msg("Login failed: user not found")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logger.Warn().Str("email", input.Email).Msg("Login failed: invalid password")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User logged in")

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout revokes the presented token by blacklisting its JTI in Redis for
// the remainder of its lifetime.
func Logout(c *gin.Context) {
	claimsValue, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusOK, gin.H{"message": "Already logged out"})
		return
	}

	claims, ok := claimsValue.(*utils.Claims)
	if !ok || claims == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Already logged out"})
		return
	}

	blacklistClaims(claims)
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// Refresh rotates the caller's token: the old one is revoked and a fresh
// 7-day token issued. The frontend calls this when a request comes back 401
// close to expiry.
func Refresh(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	token, err := utils.GenerateToken(userID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	if claimsValue, exists := c.Get("claims"); exists {
		if claims, ok := claimsValue.(*utils.Claims); ok && claims != nil {
			blacklistClaims(claims)
		}
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func blacklistClaims(claims *utils.Claims) {
	jti := claims.GetJTI()
	if jti == "" || claims.ExpiresAt == nil {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return
	}
	if err := database.BlacklistToken(jti, ttl); err != nil {
		logger.Warn().Err(err).Str("jti", jti).Msg("Failed to blacklist token")
	}
}

// --- Password reset ---

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordInput struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ForgotPassword issues a one-hour reset token. The response is the same
// whether or not the email exists.
func ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err == nil {
		resetToken := utils.GenerateID()
		user.ResetToken = resetToken
		user.ResetTokenExpiry = time.Now().Add(time.Hour)
		if err := database.DB.Save(&user).Error; err != nil {
			logger.Error().Err(err).Msg("Failed to store reset token")
		} else {
			// Mail delivery is handled out of process; the token is logged so
			// operators can relay it in development.
			logger.Info().Str("user_id", user.ID).Str("reset_token", resetToken).Msg("Password reset requested")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the email is registered, a reset link has been sent"})
}

func ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !passwordPattern.MatchString(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters of half-width letters and numbers"})
		return
	}

	var user models.User
	err := database.DB.
		Where("reset_token = ? AND reset_token_expiry > ?", input.Token, time.Now()).
		First(&user).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user.Password = string(hashedPassword)
	user.ResetToken = ""
	user.ResetTokenExpiry = time.Time{}
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("Password reset completed")
	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}
