package handlers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/organization-registry/internal/chain"
	"github.com/yukikurage/organization-registry/internal/dto"
	apierrors "github.com/yukikurage/organization-registry/internal/errors"
	"github.com/yukikurage/organization-registry/internal/middleware"
	"github.com/yukikurage/organization-registry/internal/services"
	"github.com/yukikurage/organization-registry/internal/utils"
)

type OrganizationHandler struct {
	registry *services.RegistryService
}

func NewOrganizationHandler(registry *services.RegistryService) *OrganizationHandler {
	return &OrganizationHandler{registry: registry}
}

type holdingRequest struct {
	AccountID chain.AccountID `json:"account_id"`
	Amount    chain.Balance   `json:"amount"`
}

type createOrganizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Shareholders is a pointer so an explicit empty list can be told apart
	// from an omitted one.
	Shareholders *[]holdingRequest `json:"shareholders"`
	Members      []chain.AccountID `json:"members"`
}

// CreateOrganization creates (or re-creates) an organization owned by the
// signed-in account.
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateOrganizationInput{
		Name:        []byte(req.Name),
		Description: []byte(req.Description),
		Members:     req.Members,
	}
	if req.Shareholders != nil {
		input.Shareholders = make([]services.Holding, 0, len(*req.Shareholders))
		for _, holder := range *req.Shareholders {
			// stored as a signed 64-bit column
			if holder.Amount > math.MaxInt64 {
				apierrors.BadRequest(c, "Share amount out of range")
				return
			}
			input.Shareholders = append(input.Shareholders, services.Holding{
				Account: holder.AccountID,
				Amount:  holder.Amount,
			})
		}
	}

	orgID, err := h.registry.CreateOrganization(c.Request.Context(), middleware.Origin(c), input)
	if err != nil {
		respondRegistryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateOrganizationResponse{ID: orgID})
}

// GetOrganization returns the organization loaded by RequireOrganization
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.NotFound(c, "Organization not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(org))
}

// ListMembers returns a page of the organization's member records in
// insertion order.
func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	orgID, err := chain.ParseHash(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return
	}

	page := utils.GetPaginationParams(c)
	members, total, err := h.registry.ListMembers(c.Request.Context(), orgID, &page)
	if err != nil {
		respondRegistryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberListResponse(orgID, members, page, total))
}

// GetShare returns the amount an account holds in an organization.
func (h *OrganizationHandler) GetShare(c *gin.Context) {
	orgID, err := chain.ParseHash(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return
	}
	account, err := chain.ParseAccountID(c.Param("account_id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid account ID")
		return
	}

	amount, err := h.registry.GetShare(c.Request.Context(), orgID, account)
	if err != nil {
		respondRegistryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ShareDTO{
		OrganizationID: orgID,
		AccountID:      account,
		Amount:         amount,
	})
}

// ListAccountOrganizations returns a page of the organization ids an account
// has created, one entry per creation.
func (h *OrganizationHandler) ListAccountOrganizations(c *gin.Context) {
	account, err := chain.ParseAccountID(c.Param("account_id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid account ID")
		return
	}

	page := utils.GetPaginationParams(c)
	ids, total, err := h.registry.ListParticipants(c.Request.Context(), account, &page)
	if err != nil {
		respondRegistryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ParticipantListResponse{
		AccountID:     account,
		Organizations: ids,
		Pagination:    utils.PaginationResponse{Page: page.Page, Limit: page.Limit, Total: total},
	})
}

func respondRegistryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrNameTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrOrganizationNotFound),
		errors.Is(err, services.ErrShareNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
