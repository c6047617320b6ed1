package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fuku-x/connect-app/internal/database"
	"github.com/Fuku-x/connect-app/internal/models"
)

func recruitmentResponse(r models.Recruitment) gin.H {
	return gin.H{
		"id":               r.ID,
		"user_id":          r.UserID,
		"title":            r.Title,
		"description":      r.Description,
		"required_skills":  r.RequiredSkills,
		"project_duration": r.ProjectDuration,
		"compensation":     r.Compensation,
		"status":           r.Status,
		"user":             r.User.Public(),
		"created_at":       r.CreatedAt,
		"updated_at":       r.UpdatedAt,
	}
}

// ListRecruitments returns open posts, newest first.
func ListRecruitments(c *gin.Context) {
	var recruitments []models.Recruitment
	err := database.DB.
		Where("status = ?", models.RecruitmentOpen).
		Preload("User").
		Order("created_at DESC").
		Find(&recruitments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recruitments"})
		return
	}

	out := make([]gin.H, 0, len(recruitments))
	for _, r := range recruitments {
		out = append(out, recruitmentResponse(r))
	}

	c.JSON(http.StatusOK, gin.H{"recruitments": out})
}

func GetRecruitment(c *gin.Context) {
	var recruitment models.Recruitment
	err := database.DB.
		Preload("User").
		First(&recruitment, "id = ?", c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recruitment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recruitment": recruitmentResponse(recruitment)})
}

type RecruitmentInput struct {
	Title           string   `json:"title" binding:"required,max=255"`
	Description     string   `json:"description" binding:"required"`
	RequiredSkills  []string `json:"required_skills" binding:"required"`
	ProjectDuration string   `json:"project_duration" binding:"required"`
	Compensation    string   `json:"compensation"`
}

func CreateRecruitment(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input RecruitmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recruitment := models.Recruitment{
		UserID:          userID,
		Title:           input.Title,
		Description:     input.Description,
		RequiredSkills:  mustJSON(input.RequiredSkills),
		ProjectDuration: input.ProjectDuration,
		Compensation:    input.Compensation,
		Status:          models.RecruitmentOpen,
	}

	if err := database.DB.Create(&recruitment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recruitment"})
		return
	}

	database.DB.Preload("User").First(&recruitment, "id = ?", recruitment.ID)
	c.JSON(http.StatusCreated, gin.H{"recruitment": recruitmentResponse(recruitment)})
}

type RecruitmentUpdateInput struct {
	Title           *string                   `json:"title"`
	Description     *string                   `json:"description"`
	RequiredSkills  []string                  `json:"required_skills"`
	ProjectDuration *string                   `json:"project_duration"`
	Compensation    *string                   `json:"compensation"`
	Status          *models.RecruitmentStatus `json:"status"`
}

// UpdateRecruitment is owner-scoped; other users get the same 404 as a
// missing id.
func UpdateRecruitment(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var recruitment models.Recruitment
	err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&recruitment).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recruitment not found"})
		return
	}

	var input RecruitmentUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != nil {
		if *input.Title == "" || len(*input.Title) > 255 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title must be 1-255 characters"})
			return
		}
		recruitment.Title = *input.Title
	}
	if input.Description != nil {
		if *input.Description == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Description is required"})
			return
		}
		recruitment.Description = *input.Description
	}
	if input.RequiredSkills != nil {
		recruitment.RequiredSkills = mustJSON(input.RequiredSkills)
	}
	if input.ProjectDuration != nil {
		recruitment.ProjectDuration = *input.ProjectDuration
	}
	if input.Compensation != nil {
		recruitment.Compensation = *input.Compensation
	}
	if input.Status != nil {
		if *input.Status != models.RecruitmentOpen && *input.Status != models.RecruitmentClosed {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be open or closed"})
			return
		}
		recruitment.Status = *input.Status
	}

	if err := database.DB.Save(&recruitment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recruitment"})
		return
	}

	database.DB.Preload("User").First(&recruitment, "id = ?", recruitment.ID)
	c.JSON(http.StatusOK, gin.H{"recruitment": recruitmentResponse(recruitment)})
}

func DeleteRecruitment(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	result := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Delete(&models.Recruitment{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recruitment"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recruitment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recruitment deleted"})
}
