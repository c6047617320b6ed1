package seeds

import (
	"encoding/json"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/Fuku-x/connect-app/internal/database"
	"github.com/Fuku-x/connect-app/internal/models"
)

func intPtr(v int) *int { return &v }

func jsonValue(v interface{}) datatypes.JSON {
	data, _ := json.Marshal(v)
	return datatypes.JSON(data)
}

// SeedUsers creates a handful of demo students. Existing emails are skipped
// so the seeder can run repeatedly.
func SeedUsers() []models.User {
	log.Println("Seeding demo users...")

	hash, _ := bcrypt.GenerateFromPassword([]byte("connect2025"), bcrypt.DefaultCost)

	demo := []models.User{
		{
			Name:       "田中 太郎",
			Email:      "tanaka@st.kobedenshi.ac.jp",
			Department: "ITエキスパート学科",
			Grade:      intPtr(3),
			Bio:        "Webバックエンドが好きです。GoとPostgreSQLを勉強中。",
		},
		{
			Name:       "佐藤 花子",
			Email:      "sato@st.kobedenshi.ac.jp",
			Department: "グラフィックデザイン学科",
			Grade:      intPtr(2),
			Bio:        "UI/UXデザインとイラストを描いています。",
		},
		{
			Name:       "鈴木 一郎",
			Email:      "suzuki@st.kobedenshi.ac.jp",
			Department: "ゲーム開発学科",
			Grade:      intPtr(1),
			Bio:        "Unityでゲームを作っています。チーム開発の仲間を探し中。",
		},
	}

	created := make([]models.User, 0, len(demo))
	for _, u := range demo {
		var existing models.User
		if err := database.DB.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			created = append(created, existing)
			continue
		}

		u.Password = string(hash)
		if err := database.DB.Create(&u).Error; err != nil {
			log.Printf("Failed to seed user %s: %v", u.Email, err)
			continue
		}
		created = append(created, u)
	}

	log.Printf("Seeded %d users", len(created))
	return created
}

// SeedPortfolios gives the first demo user a public portfolio.
func SeedPortfolios(users []models.User) {
	if len(users) == 0 {
		return
	}

	var count int64
	database.DB.Model(&models.Portfolio{}).Where("user_id = ?", users[0].ID).Count(&count)
	if count > 0 {
		return
	}

	portfolio := models.Portfolio{
		UserID:      users[0].ID,
		Title:       "Go製チャットアプリ",
		Description: "授業の課題で作ったリアルタイムチャットアプリです。",
		IsPublic:    true,
		Skills:      jsonValue([]string{"Go", "PostgreSQL", "React"}),
		Projects: jsonValue([]map[string]string{
			{"name": "chat-app", "description": "二者間DM", "url": "https://example.com/chat"},
		}),
		Links: jsonValue([]map[string]string{
			{"name": "GitHub", "url": "https://github.com/example"},
		}),
		GalleryImages: jsonValue([]string{}),
	}

	if err := database.DB.Create(&portfolio).Error; err != nil {
		log.Printf("Failed to seed portfolio: %v", err)
	}
}

// SeedRecruitments posts an open recruitment from the third demo user.
func SeedRecruitments(users []models.User) {
	if len(users) < 3 {
		return
	}

	var count int64
	database.DB.Model(&models.Recruitment{}).Where("user_id = ?", users[2].ID).Count(&count)
	if count > 0 {
		return
	}

	recruitment := models.Recruitment{
		UserID:          users[2].ID,
		Title:           "ゲームジャムのメンバー募集",
		Description:     "12月のゲームジャムに一緒に出るプログラマーとデザイナーを探しています。",
		RequiredSkills:  jsonValue([]string{"Unity", "C#"}),
		ProjectDuration: "1ヶ月",
		Status:          models.RecruitmentOpen,
	}

	if err := database.DB.Create(&recruitment).Error; err != nil {
		log.Printf("Failed to seed recruitment: %v", err)
	}
}
