package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Fuku-x/connect-app/internal/database"
	"github.com/Fuku-x/connect-app/internal/models"
)

func TestCreatePortfolio(t *testing.T) {
	SetupTestDB(t)
	seedUser(t, "alice", "Alice")

	c, w := testContext(t, "POST", "/api/portfolios", PortfolioInput{
		Title:       "My Chat App",
		Description: "Go backend with polling-based DMs",
		Skills:      []string{"Go", "PostgreSQL"},
		Projects: []PortfolioProject{
			{Name: "chat-app", URL: "https://example.com"},
		},
		Links: []PortfolioLink{
			{Name: "GitHub", URL: "https://github.com/example"},
		},
	}, "alice")
	CreatePortfolio(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "My Chat App")

	var count int64
	database.DB.Model(&models.Portfolio{}).Where("user_id = ?", "alice").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreatePortfolio_ProjectNeedsName(t *testing.T) {
	SetupTestDB(t)
	seedUser(t, "alice", "Alice")

	c, w := testContext(t, "POST", "/api/portfolios", PortfolioInput{
		Title:    "Broken",
		Projects: []PortfolioProject{{URL: "https://example.com"}},
	}, "alice")
	CreatePortfolio(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicListing_ExcludesPrivate(t *testing.T) {
	SetupTestDB(t)
	alice := seedUser(t, "alice", "Alice")

	database.DB.Create(&models.Portfolio{
		UserID: alice.ID, Title: "Public work", IsPublic: true,
		Skills: mustJSON([]string{"Go"}), Projects: mustJSON([]string{}),
		Links: mustJSON([]string{}), GalleryImages: mustJSON([]string{}),
	})
	database.DB.Create(&models.Portfolio{
		UserID: alice.ID, Title: "Secret draft", IsPublic: false,
		Skills: mustJSON([]string{}), Projects: mustJSON([]string{}),
		Links: mustJSON([]string{}), GalleryImages: mustJSON([]string{}),
	})

	c, w := testContext(t, "GET", "/api/public/portfolios", nil, "")
	ListPublicPortfolios(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Public work")
	assert.NotContains(t, w.Body.String(), "Secret draft")

	// The author's public identity rides along
	assert.Contains(t, w.Body.String(), "Alice")
}

func TestPublicListing_SkillFilter(t *testing.T) {
	SetupTestDB(t)
	alice := seedUser(t, "alice", "Alice")

	database.DB.Create(&models.Portfolio{
		UserID: alice.ID, Title: "Go project", IsPublic: true,
		Skills: mustJSON([]string{"Go", "Docker"}), Projects: mustJSON([]string{}),
		Links: mustJSON([]string{}), GalleryImages: mustJSON([]string{}),
	})
	database.DB.Create(&models.Portfolio{
		UserID: alice.ID, Title: "Design project", IsPublic: true,
		Skills: mustJSON([]string{"Figma"}), Projects: mustJSON([]string{}),
		Links: mustJSON([]string{}), GalleryImages: mustJSON([]string{}),
	})

	c, w := testContext(t, "GET", "/api/public/portfolios?skills=Go", nil, "")
	c.Request.URL.RawQuery = "skills=Go"
	ListPublicPortfolios(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Go project")
	assert.NotContains(t, w.Body.String(), "Design project")
}

func TestPublicShow_PrivateIs404(t *testing.T) {
	SetupTestDB(t)
	alice := seedUser(t, "alice", "Alice")

	p := models.Portfolio{
		UserID: alice.ID, Title: "Draft", IsPublic: false,
		Skills: mustJSON([]string{}), Projects: mustJSON([]string{}),
		Links: mustJSON([]string{}), GalleryImages: mustJSON([]string{}),
	}
	database.DB.Create(&p)

	c, w := testContext(t, "GET", "/api/public/portfolios/"+p.ID, nil, "")
	c.Params = []gin.Param{{Key: "id", Value: p.ID}}
	GetPublicPortfolio(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePortfolio_OwnershipIs404(t *testing.T) {
	SetupTestDB(t)
	alice := seedUser(t, "alice", "Alice")
	seedUser(t, "bob", "Bob")

	p := models.Portfolio{
		UserID: alice.ID, Title: "Mine", IsPublic: true,
		Skills: mustJSON([]string{}), Projects: mustJSON([]string{}),
		Links: mustJSON([]string{}), GalleryImages: mustJSON([]string{}),
	}
	database.DB.Create(&p)

	c, w := testContext(t, "PUT", "/api/portfolios/"+p.ID, PortfolioInput{Title: "Hijacked"}, "bob")
	c.Params = []gin.Param{{Key: "id", Value: p.ID}}
	UpdatePortfolio(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var stored models.Portfolio
	database.DB.First(&stored, "id = ?", p.ID)
	assert.Equal(t, "Mine", stored.Title)
}

func TestPortfolioResponseShape(t *testing.T) {
	SetupTestDB(t)
	alice := seedUser(t, "alice", "Alice")

	p := models.Portfolio{
		UserID: alice.ID, Title: "Shape check", IsPublic: true,
		Skills: mustJSON([]string{"Go"}), Projects: mustJSON([]string{}),
		Links: mustJSON([]string{}), GalleryImages: mustJSON([]string{}),
	}
	database.DB.Create(&p)

	c, w := testContext(t, "GET", "/api/portfolios", nil, "alice")
	ListMyPortfolios(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Portfolios []map[string]json.RawMessage `json:"portfolios"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Portfolios, 1)

	// JSON columns decode as arrays, not strings
	var skills []string
	assert.NoError(t, json.Unmarshal(resp.Portfolios[0]["skills"], &skills))
	assert.Equal(t, []string{"Go"}, skills)
}
