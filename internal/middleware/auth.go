package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/organization-registry/internal/chain"
	"github.com/yukikurage/organization-registry/internal/constants"
	apierrors "github.com/yukikurage/organization-registry/internal/errors"
)

// RequireAuth checks if the account is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw, ok := session.Get(constants.ContextKeyAccountID).(string)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		account, err := chain.ParseAccountID(raw)
		if err != nil {
			session.Clear()
			_ = session.Save()
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store account ID in context for easy access in handlers
		c.Set(constants.ContextKeyAccountID, account)
		c.Next()
	}
}

// GetAccountID retrieves the current account ID from context
func GetAccountID(c *gin.Context) (chain.AccountID, bool) {
	value, exists := c.Get(constants.ContextKeyAccountID)
	if !exists {
		return chain.AccountID{}, false
	}
	account, ok := value.(chain.AccountID)
	return account, ok
}

// Origin returns the signed origin of the current account, or an unsigned
// origin when the request is anonymous.
func Origin(c *gin.Context) chain.Origin {
	if account, ok := GetAccountID(c); ok {
		return chain.Signed(account)
	}
	return chain.Unsigned()
}
