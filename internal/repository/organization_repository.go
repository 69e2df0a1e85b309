package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/organization-registry/internal/chain"
	"github.com/yukikurage/organization-registry/internal/database"
	"github.com/yukikurage/organization-registry/internal/models"
	"github.com/yukikurage/organization-registry/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrWriteOrganization is returned when upserting the organization record fails.
	ErrWriteOrganization = errors.New("organization repository: write organization failed")
	// ErrWriteParticipant is returned when appending to the participants index fails.
	ErrWriteParticipant = errors.New("organization repository: write participant failed")
	// ErrWriteShares is returned when replacing the share ledger fails.
	ErrWriteShares = errors.New("organization repository: write shares failed")
	// ErrWriteMembers is returned when replacing the member list fails.
	ErrWriteMembers = errors.New("organization repository: write members failed")
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// ApplyCreation writes the organization, participant entry, share ledger and
// member list in one transaction.
func (r *GormOrganizationRepository) ApplyCreation(ctx context.Context, c *Creation) error {
	orgID := c.Organization.ID

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&c.Organization).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOrganization, err)
		}

		if err := tx.Create(&c.Participant).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrWriteParticipant, err)
		}

		if err := tx.Where("organization_id = ?", orgID).Delete(&models.Share{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrWriteShares, err)
		}
		// A holder listed twice keeps the last amount.
		for i := range c.Shares {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&c.Shares[i]).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrWriteShares, err)
			}
		}

		if err := tx.Where("organization_id = ?", orgID).Delete(&models.OrganizationMember{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrWriteMembers, err)
		}
		if len(c.Members) > 0 {
			if err := tx.Create(&c.Members).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrWriteMembers, err)
			}
		}

		return nil
	})
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(ctx context.Context, id chain.Hash) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// ListParticipants lists the organizations an account participates in
func (r *GormOrganizationRepository) ListParticipants(ctx context.Context, account chain.AccountID, page *utils.PaginationParams) ([]models.Participant, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Participant{}).Where("account_id = ?", account)

	var participants []models.Participant
	total, err := findPage(query, page, &participants)
	if err != nil {
		return nil, 0, err
	}
	return participants, total, nil
}

// ListMembers lists all members of an organization
func (r *GormOrganizationRepository) ListMembers(ctx context.Context, organizationID chain.Hash, page *utils.PaginationParams) ([]models.OrganizationMember, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrganizationMember{}).Where("organization_id = ?", organizationID)

	var members []models.OrganizationMember
	total, err := findPage(query, page, &members)
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// FindShare finds a specific share ledger entry
func (r *GormOrganizationRepository) FindShare(ctx context.Context, organizationID chain.Hash, account chain.AccountID) (*models.Share, error) {
	var share models.Share
	if err := r.db.WithContext(ctx).
		Where("organization_id = ? AND account_id = ?", organizationID, account).
		First(&share).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// findPage counts the rows matched by query and loads the requested page,
// ordered by seq.
func findPage(query *gorm.DB, page *utils.PaginationParams, dest interface{}) (int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, err
	}

	q := query.Session(&gorm.Session{}).Order("seq")
	if page != nil {
		q = q.Scopes(database.Paginate(*page))
	}
	if err := q.Find(dest).Error; err != nil {
		return 0, err
	}
	return total, nil
}
