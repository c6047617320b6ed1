package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/Fuku-x/connect-app/internal/database"
	"github.com/Fuku-x/connect-app/internal/models"
)

func TestRegister_RejectsOutsideDomain(t *testing.T) {
	SetupTestDB(t)

	c, w := testContext(t, "POST", "/api/auth/register", RegisterInput{
		Name:     "Taro",
		Email:    "taro@gmail.com",
		Password: "password123",
	}, "")

	Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "st.kobedenshi.ac.jp")
}

func TestRegister_RejectsWeakPassword(t *testing.T) {
	SetupTestDB(t)

	cases := []string{"short1", "with spaces 123", "パスワード12345"}
	for _, pw := range cases {
		c, w := testContext(t, "POST", "/api/auth/register", RegisterInput{
			Name:     "Taro",
			Email:    "taro@st.kobedenshi.ac.jp",
			Password: pw,
		}, "")

		Register(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, "password %q should be rejected", pw)
	}
}

func TestRegister_Success(t *testing.T) {
	SetupTestDB(t)

	c, w := testContext(t, "POST", "/api/auth/register", RegisterInput{
		Name:     "Taro Tanaka",
		Email:    "tanaka@st.kobedenshi.ac.jp",
		Password: "password123",
	}, "")

	Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "tanaka@st.kobedenshi.ac.jp", resp.User.Email)

	// Password never leaves the server
	assert.NotContains(t, w.Body.String(), "password123")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	SetupTestDB(t)
	seedUser(t, "existing", "Existing")

	c, w := testContext(t, "POST", "/api/auth/register", RegisterInput{
		Name:     "Copycat",
		Email:    "existing@st.kobedenshi.ac.jp",
		Password: "password123",
	}, "")

	Register(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	SetupTestDB(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := models.User{Name: "Taro", Email: "taro@st.kobedenshi.ac.jp", Password: string(hash)}
	database.DB.Create(&user)

	c, w := testContext(t, "POST", "/api/auth/login", LoginInput{
		Email:    "taro@st.kobedenshi.ac.jp",
		Password: "wrongpass99",
	}, "")
	Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testContext(t, "POST", "/api/auth/login", LoginInput{
		Email:    "taro@st.kobedenshi.ac.jp",
		Password: "password123",
	}, "")
	Login(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")
}

func TestResetPasswordFlow(t *testing.T) {
	SetupTestDB(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword1"), bcrypt.DefaultCost)
	user := models.User{Name: "Taro", Email: "taro@st.kobedenshi.ac.jp", Password: string(hash)}
	database.DB.Create(&user)

	c, w := testContext(t, "POST", "/api/auth/forgot-password", ForgotPasswordInput{
		Email: "taro@st.kobedenshi.ac.jp",
	}, "")
	ForgotPassword(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	database.DB.First(&stored, "id = ?", user.ID)
	assert.NotEmpty(t, stored.ResetToken)

	c, w = testContext(t, "POST", "/api/auth/reset-password", ResetPasswordInput{
		Token:    stored.ResetToken,
		Password: "newpassword1",
	}, "")
	ResetPassword(c)
	assert.Equal(t, http.StatusOK, w.Code)

	database.DB.First(&stored, "id = ?", user.ID)
	assert.Empty(t, stored.ResetToken)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newpassword1")))

	// The token is single-use
	c, w = testContext(t, "POST", "/api/auth/reset-password", ResetPasswordInput{
		Token:    "stale-token",
		Password: "anotherpass1",
	}, "")
	ResetPassword(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForgotPassword_UnknownEmailSameResponse(t *testing.T) {
	SetupTestDB(t)

	c, w := testContext(t, "POST", "/api/auth/forgot-password", ForgotPasswordInput{
		Email: "nobody@st.kobedenshi.ac.jp",
	}, "")
	ForgotPassword(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
