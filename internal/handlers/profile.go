package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fuku-x/connect-app/internal/database"
	"github.com/Fuku-x/connect-app/internal/models"
	"github.com/Fuku-x/connect-app/pkg/utils"
)

// GetProfile returns the authenticated user's own record, including fields
// other users never see.
func GetProfile(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateProfileInput struct {
	Name         *string `json:"name"`
	StudentID    *string `json:"student_id"`
	Department   *string `json:"department"`
	Grade        *int    `json:"grade"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profile_image"`
}

func UpdateProfile(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if input.Name != nil {
		if *input.Name == "" || len(*input.Name) > 255 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name must be 1-255 characters"})
			return
		}
		user.Name = *input.Name
	}
	if input.StudentID != nil {
		if len(*input.StudentID) > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Student ID must be 50 characters or less"})
			return
		}
		user.StudentID = *input.StudentID
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.Grade != nil {
		if *input.Grade < 1 || *input.Grade > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Grade must be between 1 and 6"})
			return
		}
		user.Grade = input.Grade
	}
	if input.Bio != nil {
		if len(*input.Bio) > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bio must be 1000 characters or less"})
			return
		}
		user.Bio = *input.Bio
	}
	if input.ProfileImage != nil {
		user.ProfileImage = *input.ProfileImage
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUsers returns public identities of other students, used by the
// messaging UI to start a conversation. Supports ?search= over names.
func ListUsers(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	query := database.DB.Model(&models.User{}).Where("id != ?", userID)

	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", utils.SanitizeSearchQuery(search))
	}

	var users []models.User
	if err := query.Order("name ASC").Limit(50).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	public := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}

	c.JSON(http.StatusOK, gin.H{"users": public})
}
