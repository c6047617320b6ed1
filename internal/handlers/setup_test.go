package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Fuku-x/connect-app/internal/config"
	"github.com/Fuku-x/connect-app/internal/database"
	"github.com/Fuku-x/connect-app/internal/models"
)

func SetupTestDB(t *testing.T) {
	config.AppConfig = &config.Config{
		JWTSecret: "test_secret_key_12345",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.Message{},
		&models.Portfolio{},
		&models.Recruitment{},
		&models.Task{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	database.DB = db
	gin.SetMode(gin.TestMode)
}

// testContext builds a recorder-backed gin context with an optional JSON
// body and an authenticated caller.
func testContext(t *testing.T, method, path string, body interface{}, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	if userID != "" {
		c.Set("userId", userID)
	}
	return c, w
}

func seedUser(t *testing.T, id, name string) models.User {
	user := models.User{ID: id, Name: name, Email: id + "@st.kobedenshi.ac.jp"}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", id, err)
	}
	return user
}
