package repository

import (
	"context"

	"github.com/yukikurage/organization-registry/internal/chain"
	"github.com/yukikurage/organization-registry/internal/models"
	"github.com/yukikurage/organization-registry/internal/utils"
)

// Creation is the full write set of one organization creation.
type Creation struct {
	Organization models.Organization
	Participant  models.Participant
	// Members in list order: plain members first, then one record per shareholder.
	Members []models.OrganizationMember
	Shares  []models.Share
}

// OrganizationRepository defines the interface for organization registry data access
type OrganizationRepository interface {
	// ApplyCreation writes a Creation atomically. The organization record and
	// its member list and share ledger replace any previous ones at the same
	// id; the participant entry is appended.
	ApplyCreation(ctx context.Context, c *Creation) error

	// FindByID finds an organization by ID
	FindByID(ctx context.Context, id chain.Hash) (*models.Organization, error)

	// ListParticipants lists an account's organization index in append order.
	// A nil page returns every entry.
	ListParticipants(ctx context.Context, account chain.AccountID, page *utils.PaginationParams) ([]models.Participant, int64, error)

	// ListMembers lists an organization's member records in list order.
	// A nil page returns every entry.
	ListMembers(ctx context.Context, organizationID chain.Hash, page *utils.PaginationParams) ([]models.OrganizationMember, int64, error)

	// FindShare finds the share an account holds in an organization
	FindShare(ctx context.Context, organizationID chain.Hash, account chain.AccountID) (*models.Share, error)
}
