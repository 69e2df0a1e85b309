package handlers

import (
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/organization-registry/internal/chain"
	"github.com/yukikurage/organization-registry/internal/constants"
	"github.com/yukikurage/organization-registry/internal/dto"
	apierrors "github.com/yukikurage/organization-registry/internal/errors"
	"github.com/yukikurage/organization-registry/internal/middleware"
	"github.com/yukikurage/organization-registry/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Challenge issues a nonce for the account to sign and keeps it in the session.
func (h *AuthHandler) Challenge(c *gin.Context) {
	account, err := chain.ParseAccountID(c.Query("account_id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid account ID")
		return
	}

	challenge, err := h.authService.IssueChallenge(account)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	nonce := hex.EncodeToString(challenge.Nonce)
	session := sessions.Default(c)
	session.Set(constants.SessionKeyChallengeAccount, account.String())
	session.Set(constants.SessionKeyChallengeNonce, nonce)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ChallengeDTO{
		AccountID: account,
		Nonce:     nonce,
	})
}

// Login verifies the signed challenge and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		AccountID string `json:"account_id" binding:"required"`
		Signature string `json:"signature" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := chain.ParseAccountID(req.AccountID)
	if err != nil {
		apierrors.BadRequest(c, "Invalid account ID")
		return
	}
	signature, err := hex.DecodeString(strings.TrimPrefix(req.Signature, "0x"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid signature encoding")
		return
	}

	session := sessions.Default(c)
	challenge := pendingChallenge(session)

	// a challenge is good for one attempt
	session.Delete(constants.SessionKeyChallengeAccount)
	session.Delete(constants.SessionKeyChallengeNonce)

	account, err = h.authService.Login(services.LoginInput{
		Challenge: challenge,
		Account:   account,
		Signature: signature,
	})
	if err != nil {
		_ = session.Save()
		respondAuthError(c, err)
		return
	}

	session.Set(constants.ContextKeyAccountID, account.String())
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.AccountDTO{AccountID: account})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentAccount returns the authenticated account.
func (h *AuthHandler) GetCurrentAccount(c *gin.Context) {
	account, exists := middleware.GetAccountID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, dto.AccountDTO{AccountID: account})
}

func pendingChallenge(session sessions.Session) *services.Challenge {
	rawAccount, _ := session.Get(constants.SessionKeyChallengeAccount).(string)
	rawNonce, _ := session.Get(constants.SessionKeyChallengeNonce).(string)
	if rawAccount == "" || rawNonce == "" {
		return nil
	}

	account, err := chain.ParseAccountID(rawAccount)
	if err != nil {
		return nil
	}
	nonce, err := hex.DecodeString(rawNonce)
	if err != nil {
		return nil
	}
	return &services.Challenge{Account: account, Nonce: nonce}
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoPendingChallenge),
		errors.Is(err, services.ErrChallengeMismatch),
		errors.Is(err, services.ErrInvalidSignature):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrChallengeGenerateFail):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
