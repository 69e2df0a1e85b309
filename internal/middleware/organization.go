package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/organization-registry/internal/chain"
	apierrors "github.com/yukikurage/organization-registry/internal/errors"
	"github.com/yukikurage/organization-registry/internal/models"
	"github.com/yukikurage/organization-registry/internal/services"
)

const contextKeyOrganization = "organization"

// RequireOrganization resolves the :id parameter to an existing organization
// and stores it in the context.
func RequireOrganization(registry *services.RegistryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID, err := chain.ParseHash(c.Param("id"))
		if err != nil {
			apierrors.BadRequest(c, "Invalid organization ID")
			c.Abort()
			return
		}

		org, err := registry.GetOrganization(c.Request.Context(), orgID)
		if err != nil {
			if errors.Is(err, services.ErrOrganizationNotFound) {
				apierrors.NotFound(c, "Organization not found")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(contextKeyOrganization, *org)
		c.Next()
	}
}

// GetOrganization retrieves the organization set by RequireOrganization
func GetOrganization(c *gin.Context) (models.Organization, bool) {
	value, exists := c.Get(contextKeyOrganization)
	if !exists {
		return models.Organization{}, false
	}
	org, ok := value.(models.Organization)
	return org, ok
}
