package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhive/taskhive/database"
	"taskhive/taskhive/services"
	"taskhive/taskhive/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// mailRecorder captures outbound tokens so tests can walk the verification
// and reset flows end to end.
type mailRecorder struct {
	verificationTokens map[string]string
	resetTokens        map[string]string
}

func newMailRecorder() *mailRecorder {
	return &mailRecorder{
		verificationTokens: map[string]string{},
		resetTokens:        map[string]string{},
	}
}

func (m *mailRecorder) SendVerificationEmail(to, token string) error {
	m.verificationTokens[to] = token
	return nil
}

func (m *mailRecorder) SendPasswordResetEmail(to, token string) error {
	m.resetTokens[to] = token
	return nil
}

func setupAuthRouter(t *testing.T) (*gin.Engine, *database.Database, *services.AuthService, *mailRecorder) {
	gin.SetMode(gin.TestMode)

	db := testutils.SetupTestDB(t)
	mailer := newMailRecorder()
	authService := services.NewAuthService("test-secret", 1)
	userService := services.NewUserService(authService, mailer)

	router := gin.New()
	RegisterAuthRoutes(router, db, authService, userService)
	return router, db, authService, mailer
}

func doJSON(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func registerViaAPI(t *testing.T, router *gin.Engine, email string) (token string, userID string) {
	body := fmt.Sprintf(`{"name":"Ada","email":"%s","password":"long enough password"}`, email)
	w := doJSON(router, "POST", "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

func TestRegister(t *testing.T) {
	router, _, authService, _ := setupAuthRouter(t)

	token, userID := registerViaAPI(t, router, "ada@example.com")

	// The issued token must decode to the new user's id.
	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID.String())
}

func TestRegister_ValidationFailures(t *testing.T) {
	router, _, _, _ := setupAuthRouter(t)

	t.Run("Missing Fields", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/auth/register", `{"email":"ada@example.com"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Short Password", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/auth/register", `{"name":"Ada","email":"ada@example.com","password":"short"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Bad Email", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/auth/register", `{"name":"Ada","email":"not-an-email","password":"long enough password"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router, _, _, _ := setupAuthRouter(t)
	registerViaAPI(t, router, "ada@example.com")

	w := doJSON(router, "POST", "/api/v1/auth/register",
		`{"name":"Imposter","email":"ada@example.com","password":"another password"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	router, _, _, _ := setupAuthRouter(t)
	registerViaAPI(t, router, "ada@example.com")

	wrongPassword := doJSON(router, "POST", "/api/v1/auth/login",
		`{"email":"ada@example.com","password":"wrong password!"}`, "")
	unknownEmail := doJSON(router, "POST", "/api/v1/auth/login",
		`{"email":"ghost@example.com","password":"whatever password"}`, "")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLogin_Success(t *testing.T) {
	router, _, authService, _ := setupAuthRouter(t)
	_, userID := registerViaAPI(t, router, "ada@example.com")

	w := doJSON(router, "POST", "/api/v1/auth/login",
		`{"email":"ada@example.com","password":"long enough password"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	claims, err := authService.ValidateToken(resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID.String())
}

func TestMe(t *testing.T) {
	router, _, _, _ := setupAuthRouter(t)
	token, _ := registerViaAPI(t, router, "ada@example.com")

	t.Run("With Token", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/v1/auth/me", "", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ada@example.com")
	})

	t.Run("Without Token", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/v1/auth/me", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/v1/auth/me", "", "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUpdateProfile(t *testing.T) {
	router, _, _, _ := setupAuthRouter(t)
	token, _ := registerViaAPI(t, router, "ada@example.com")

	w := doJSON(router, "PUT", "/api/v1/auth/profile", `{"name":"Ada Lovelace"}`, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada Lovelace")

	me := doJSON(router, "GET", "/api/v1/auth/me", "", token)
	assert.Contains(t, me.Body.String(), "Ada Lovelace")
}

func TestUpdatePassword(t *testing.T) {
	router, _, _, _ := setupAuthRouter(t)
	token, _ := registerViaAPI(t, router, "ada@example.com")

	t.Run("Wrong Current Password", func(t *testing.T) {
		w := doJSON(router, "PUT", "/api/v1/auth/password",
			`{"current_password":"nope nope nope","new_password":"a new password!"}`, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Success Issues Fresh Token", func(t *testing.T) {
		w := doJSON(router, "PUT", "/api/v1/auth/password",
			`{"current_password":"long enough password","new_password":"a new password!"}`, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "token")

		login := doJSON(router, "POST", "/api/v1/auth/login",
			`{"email":"ada@example.com","password":"a new password!"}`, "")
		assert.Equal(t, http.StatusOK, login.Code)
	})
}

func TestPasswordResetFlow(t *testing.T) {
	router, _, _, mailer := setupAuthRouter(t)
	registerViaAPI(t, router, "ada@example.com")

	t.Run("Forgot Unknown Email", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/auth/forgot-password", `{"email":"ghost@example.com"}`, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	w := doJSON(router, "POST", "/api/v1/auth/forgot-password", `{"email":"ada@example.com"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)

	raw := mailer.resetTokens["ada@example.com"]
	assert.NotEmpty(t, raw)

	t.Run("Reset Succeeds Once", func(t *testing.T) {
		w := doJSON(router, "PUT", "/api/v1/auth/reset-password/"+raw, `{"password":"a brand new password"}`, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "token")

		login := doJSON(router, "POST", "/api/v1/auth/login",
			`{"email":"ada@example.com","password":"a brand new password"}`, "")
		assert.Equal(t, http.StatusOK, login.Code)
	})

	t.Run("Reused Token Fails", func(t *testing.T) {
		w := doJSON(router, "PUT", "/api/v1/auth/reset-password/"+raw, `{"password":"yet another password"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Bogus Token Fails", func(t *testing.T) {
		w := doJSON(router, "PUT", "/api/v1/auth/reset-password/made-up-token", `{"password":"yet another password"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVerifyEmailFlow(t *testing.T) {
	router, _, _, mailer := setupAuthRouter(t)
	token, _ := registerViaAPI(t, router, "ada@example.com")

	raw := mailer.verificationTokens["ada@example.com"]
	assert.NotEmpty(t, raw)

	w := doJSON(router, "GET", "/api/v1/auth/verify-email/"+raw, "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	me := doJSON(router, "GET", "/api/v1/auth/me", "", token)
	assert.Contains(t, me.Body.String(), `"is_email_verified":true`)

	t.Run("Reused Token Fails", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/v1/auth/verify-email/"+raw, "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogout(t *testing.T) {
	router, _, _, _ := setupAuthRouter(t)
	token, _ := registerViaAPI(t, router, "ada@example.com")

	w := doJSON(router, "POST", "/api/v1/auth/logout", "", token)
	assert.Equal(t, http.StatusOK, w.Code)

	// Stateless tokens stay valid until they expire; logout only clears the
	// cookie client-side.
	me := doJSON(router, "GET", "/api/v1/auth/me", "", token)
	assert.Equal(t, http.StatusOK, me.Code)
}
