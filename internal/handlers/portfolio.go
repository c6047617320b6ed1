package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Fuku-x/connect-app/internal/database"
	"github.com/Fuku-x/connect-app/internal/models"
	"github.com/Fuku-x/connect-app/pkg/utils"
)

const (
	portfolioCachePrefix = "cache:public_portfolios:"
	portfolioCacheTTL    = 60 * time.Second
	maxGalleryImages     = 6
)

type PortfolioProject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image"`
}

type PortfolioLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type PortfolioInput struct {
	Title         string             `json:"title" binding:"required,max=255"`
	Description   string             `json:"description"`
	IsPublic      bool               `json:"is_public"`
	Skills        []string           `json:"skills"`
	Projects      []PortfolioProject `json:"projects"`
	Links         []PortfolioLink    `json:"links"`
	ThumbnailPath string             `json:"thumbnail_path"`
	GalleryImages []string           `json:"gallery_images"`
	GithubURL     string             `json:"github_url"`
	ExternalURL   string             `json:"external_url"`
}

func (in *PortfolioInput) validate() string {
	for _, s := range in.Skills {
		if len(s) > 50 {
			return "Skills must be 50 characters or less"
		}
	}
	for _, p := range in.Projects {
		if p.Name == "" {
			return "Every project needs a name"
		}
	}
	for _, l := range in.Links {
		if l.Name == "" || l.URL == "" {
			return "Every link needs a name and a URL"
		}
	}
	if len(in.GalleryImages) > maxGalleryImages {
		return fmt.Sprintf("Gallery is limited to %d images", maxGalleryImages)
	}
	return ""
}

func (in *PortfolioInput) apply(p *models.Portfolio) {
	p.Title = in.Title
	p.Description = in.Description
	p.IsPublic = in.IsPublic
	p.Skills = mustJSON(in.Skills)
	p.Projects = mustJSON(in.Projects)
	p.Links = mustJSON(in.Links)
	p.ThumbnailPath = in.ThumbnailPath
	p.GalleryImages = mustJSON(in.GalleryImages)
	p.GithubURL = in.GithubURL
	p.ExternalURL = in.ExternalURL
}

// mustJSON marshals request slices into a JSON column value. Nil slices
// become empty arrays so the column never stores SQL null.
func mustJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil || string(data) == "null" {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}

func portfolioResponse(p models.Portfolio, withUser bool) gin.H {
	resp := gin.H{
		"id":             p.ID,
		"user_id":        p.UserID,
		"title":          p.Title,
		"description":    p.Description,
		"skills":         p.Skills,
		"projects":       p.Projects,
		"links":          p.Links,
		"is_public":      p.IsPublic,
		"thumbnail_path": p.ThumbnailPath,
		"gallery_images": p.GalleryImages,
		"github_url":     p.GithubURL,
		"external_url":   p.ExternalURL,
		"created_at":     p.CreatedAt,
		"updated_at":     p.UpdatedAt,
	}
	if withUser {
		resp["user"] = p.User.Public()
	}
	return resp
}

// ListMyPortfolios returns all of the caller's portfolios, newest first.
func ListMyPortfolios(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var portfolios []models.Portfolio
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&portfolios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolios"})
		return
	}

	out := make([]gin.H, 0, len(portfolios))
	for _, p := range portfolios {
		out = append(out, portfolioResponse(p, false))
	}

	c.JSON(http.StatusOK, gin.H{"portfolios": out})
}

func CreatePortfolio(c *gin.Context) {
	userID := c.MustGet("userId").(string)

	var input PortfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	portfolio := models.Portfolio{UserID: userID}
	input.apply(&portfolio)

	if err := database.DB.Create(&portfolio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create portfolio"})
		return
	}

	invalidatePortfolioCache()
	c.JSON(http.StatusCreated, gin.H{"portfolio": portfolioResponse(portfolio, false)})
}

func UpdatePortfolio(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	portfolioID := c.Param("id")

	var portfolio models.Portfolio
	if err := database.DB.
		Where("id = ? AND user_id = ?", portfolioID, userID).
		First(&portfolio).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
		return
	}

	var input PortfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	input.apply(&portfolio)

	if err := database.DB.Save(&portfolio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update portfolio"})
		return
	}

	invalidatePortfolioCache()
	c.JSON(http.StatusOK, gin.H{"portfolio": portfolioResponse(portfolio, false)})
}

func DeletePortfolio(c *gin.Context) {
	userID := c.MustGet("userId").(string)
	portfolioID := c.Param("id")

	result := database.DB.
		Where("id = ? AND user_id = ?", portfolioID, userID).
		Delete(&models.Portfolio{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete portfolio"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
		return
	}

	invalidatePortfolioCache()
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio deleted"})
}

// ListPublicPortfolios is the public, paginated showcase. Supports free-text
// ?search over title/description and a comma-separated ?skills filter where
// every listed skill must be present. Unfiltered pages are cached briefly.
func ListPublicPortfolios(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "12"))
	if perPage < 1 || perPage > 50 {
		perPage = 12
	}

	search := c.Query("search")
	skillsParam := c.Query("skills")

	cacheKey := ""
	if search == "" && skillsParam == "" {
		cacheKey = fmt.Sprintf("%sp%d_n%d", portfolioCachePrefix, page, perPage)
		var cached gin.H
		if err := database.CacheGet(cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	query := database.DB.Model(&models.Portfolio{}).
		Where("is_public = ?", true).
		Preload("User")

	if search != "" {
		term := utils.SanitizeSearchQuery(search)
		query = query.Where("title LIKE ? OR description LIKE ?", term, term)
	}

	for _, skill := range strings.Split(skillsParam, ",") {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		query = query.Where(datatypes.JSONArrayQuery("skills").Contains(skill))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolios"})
		return
	}

	var portfolios []models.Portfolio
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&portfolios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolios"})
		return
	}

	out := make([]gin.H, 0, len(portfolios))
	for _, p := range portfolios {
		out = append(out, portfolioResponse(p, true))
	}

	response := gin.H{
		"portfolios": out,
		"meta": gin.H{
			"page":     page,
			"per_page": perPage,
			"total":    total,
		},
	}

	if cacheKey != "" {
		database.CacheSet(cacheKey, response, portfolioCacheTTL)
	}

	c.JSON(http.StatusOK, response)
}

// GetPublicPortfolio returns one portfolio; private rows 404 regardless of
// caller.
func GetPublicPortfolio(c *gin.Context) {
	var portfolio models.Portfolio
	err := database.DB.
		Where("id = ? AND is_public = ?", c.Param("id"), true).
		Preload("User").
		First(&portfolio).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Portfolio not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch portfolio"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolioResponse(portfolio, true)})
}

func invalidatePortfolioCache() {
	database.CacheInvalidate(portfolioCachePrefix + "*")
}
