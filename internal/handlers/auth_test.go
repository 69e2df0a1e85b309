package handlers

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/organization-registry/internal/chain"
	"github.com/yukikurage/organization-registry/internal/constants"
	"github.com/yukikurage/organization-registry/internal/dto"
	"github.com/yukikurage/organization-registry/internal/middleware"
	"github.com/yukikurage/organization-registry/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthRouter() *gin.Engine {
	handler := NewAuthHandler(services.NewAuthService())

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.GET("/api/auth/challenge", handler.Challenge)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", handler.Logout)
	r.GET("/api/auth/me", middleware.RequireAuth(), handler.GetCurrentAccount)
	return r
}

func newKey(t *testing.T) (chain.AccountID, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	var account chain.AccountID
	copy(account[:], pub)
	return account, priv
}

// do sends a request carrying cookies and returns the recorder.
func do(r *gin.Engine, method, url string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body []byte
	if payload != nil {
		body, _ = json.Marshal(payload)
	}
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func requestChallenge(t *testing.T, r *gin.Engine, account chain.AccountID) (dto.ChallengeDTO, []*http.Cookie) {
	t.Helper()
	w := do(r, http.MethodGet, "/api/auth/challenge?account_id="+account.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var challenge dto.ChallengeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &challenge))
	require.Equal(t, account, challenge.AccountID)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return challenge, cookies
}

func TestAuthHandler_LoginFlow(t *testing.T) {
	r := setupAuthRouter()
	account, priv := newKey(t)

	challenge, cookies := requestChallenge(t, r, account)
	nonce, err := hex.DecodeString(challenge.Nonce)
	require.NoError(t, err)
	require.Len(t, nonce, constants.ChallengeNonceSize)

	w := do(r, http.MethodPost, "/api/auth/login", map[string]string{
		"account_id": account.String(),
		"signature":  hex.EncodeToString(ed25519.Sign(priv, nonce)),
	}, cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AccountDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, account, response.AccountID)

	session := w.Result().Cookies()
	require.NotEmpty(t, session)

	w = do(r, http.MethodGet, "/api/auth/me", nil, session)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, account, response.AccountID)

	w = do(r, http.MethodPost, "/api/auth/logout", nil, session)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/auth/me", nil, w.Result().Cookies())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginRejectsBadSignature(t *testing.T) {
	r := setupAuthRouter()
	account, _ := newKey(t)
	_, otherKey := newKey(t)

	challenge, cookies := requestChallenge(t, r, account)
	nonce, err := hex.DecodeString(challenge.Nonce)
	require.NoError(t, err)

	w := do(r, http.MethodPost, "/api/auth/login", map[string]string{
		"account_id": account.String(),
		"signature":  hex.EncodeToString(ed25519.Sign(otherKey, nonce)),
	}, cookies)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_ChallengeIsSingleUse(t *testing.T) {
	r := setupAuthRouter()
	account, priv := newKey(t)

	challenge, cookies := requestChallenge(t, r, account)
	nonce, err := hex.DecodeString(challenge.Nonce)
	require.NoError(t, err)

	// a failed attempt consumes the challenge
	w := do(r, http.MethodPost, "/api/auth/login", map[string]string{
		"account_id": account.String(),
		"signature":  hex.EncodeToString(make([]byte, ed25519.SignatureSize)),
	}, cookies)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/auth/login", map[string]string{
		"account_id": account.String(),
		"signature":  hex.EncodeToString(ed25519.Sign(priv, nonce)),
	}, w.Result().Cookies())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginWithoutChallenge(t *testing.T) {
	r := setupAuthRouter()
	account, priv := newKey(t)

	w := do(r, http.MethodPost, "/api/auth/login", map[string]string{
		"account_id": account.String(),
		"signature":  hex.EncodeToString(ed25519.Sign(priv, []byte("anything"))),
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_BadInput(t *testing.T) {
	r := setupAuthRouter()

	tests := []struct {
		name    string
		method  string
		url     string
		payload any
	}{
		{"challenge without account", http.MethodGet, "/api/auth/challenge", nil},
		{"challenge with short account", http.MethodGet, "/api/auth/challenge?account_id=0xabcd", nil},
		{"login missing signature", http.MethodPost, "/api/auth/login", map[string]string{"account_id": chain.AccountID{1}.String()}},
		{"login non-hex signature", http.MethodPost, "/api/auth/login", map[string]string{"account_id": chain.AccountID{1}.String(), "signature": "zz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.url, tt.payload, nil)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthHandler_GetCurrentAccount(t *testing.T) {
	handler := NewAuthHandler(services.NewAuthService())
	account := chain.AccountID{0x42}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyAccountID, account)

	handler.GetCurrentAccount(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.AccountDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, account, response.AccountID)
}
