package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/yukikurage/organization-registry/internal/chain"
	"github.com/yukikurage/organization-registry/internal/events"
	"github.com/yukikurage/organization-registry/internal/identity"
	"github.com/yukikurage/organization-registry/internal/models"
	"github.com/yukikurage/organization-registry/internal/repository"
	"github.com/yukikurage/organization-registry/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrUnauthorized         = chain.ErrUnauthorized
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrShareNotFound        = errors.New("share not found")
	ErrNameTooLong          = errors.New("organization name too long")
)

// RegistryOptions holds organization creation policy.
type RegistryOptions struct {
	// DefaultShares is granted to the creator when no shareholders are given.
	DefaultShares chain.Balance
	// MaxNameLength rejects longer names when positive.
	MaxNameLength int
}

// RegistryService owns the organization registry state transition and its
// read queries. Transitions are serialized; each one commits as a single
// transaction.
type RegistryService struct {
	repo    repository.OrganizationRepository
	deriver *identity.Deriver
	clock   chain.Clock
	sink    events.Sink
	opts    RegistryOptions
	logger  *slog.Logger

	mu sync.Mutex
}

// NewRegistryService creates a new RegistryService. A nil sink discards events.
func NewRegistryService(
	repo repository.OrganizationRepository,
	deriver *identity.Deriver,
	clock chain.Clock,
	sink events.Sink,
	opts RegistryOptions,
) *RegistryService {
	if sink == nil {
		sink = events.Discard
	}
	return &RegistryService{
		repo:    repo,
		deriver: deriver,
		clock:   clock,
		sink:    sink,
		opts:    opts,
		logger:  slog.Default().With("component", "registry"),
	}
}

// Holding is one shareholder entry.
type Holding struct {
	Account chain.AccountID
	Amount  chain.Balance
}

// CreateOrganizationInput represents parameters to create a new organization.
// A nil Shareholders makes the caller the sole shareholder with the default
// amount; a non-nil empty slice creates no shares at all.
type CreateOrganizationInput struct {
	Name         []byte
	Description  []byte
	Shareholders []Holding
	Members      []chain.AccountID
}

// CreateOrganization derives the organization id from the caller and name and
// writes the organization, the caller's participant entry, the share ledger
// and the member list. An existing organization at the same id is replaced.
func (s *RegistryService) CreateOrganization(ctx context.Context, origin chain.Origin, input CreateOrganizationInput) (chain.Hash, error) {
	caller, err := chain.EnsureSigned(origin)
	if err != nil {
		return chain.Hash{}, err
	}
	if s.opts.MaxNameLength > 0 && len(input.Name) > s.opts.MaxNameLength {
		return chain.Hash{}, ErrNameTooLong
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	height := s.clock.CurrentHeight()
	orgID := s.deriver.DeriveID(caller, input.Name)

	shareholders := input.Shareholders
	if shareholders == nil {
		shareholders = []Holding{{Account: caller, Amount: s.opts.DefaultShares}}
	}

	creation := &repository.Creation{
		Organization: models.Organization{
			ID:          orgID,
			Name:        bytes.Clone(input.Name),
			Description: bytes.Clone(input.Description),
			Creator:     caller,
			CreatedAt:   height,
		},
		Participant: models.Participant{
			AccountID:      caller,
			OrganizationID: orgID,
		},
		Members: make([]models.OrganizationMember, 0, len(input.Members)+len(shareholders)),
		Shares:  make([]models.Share, 0, len(shareholders)),
	}

	for _, account := range input.Members {
		creation.Members = append(creation.Members, models.OrganizationMember{
			OrganizationID: orgID,
			AccountID:      account,
			JoinedAt:       height,
			IsShareholder:  false,
		})
	}

	// Shareholders get their own member record even when already listed
	// as plain members.
	for _, holder := range shareholders {
		creation.Shares = append(creation.Shares, models.Share{
			OrganizationID: orgID,
			AccountID:      holder.Account,
			Amount:         holder.Amount,
		})
		creation.Members = append(creation.Members, models.OrganizationMember{
			OrganizationID: orgID,
			AccountID:      holder.Account,
			JoinedAt:       height,
			IsShareholder:  true,
		})
	}

	if err := s.repo.ApplyCreation(ctx, creation); err != nil {
		s.logger.ErrorContext(ctx, "organization creation failed",
			"organization_id", orgID.String(), "creator", caller.String(), "error", err)
		return chain.Hash{}, fmt.Errorf("failed to create organization: %w", err)
	}

	s.sink.Publish(ctx, events.OrganizationCreated{
		OrganizationID: orgID,
		Creator:        caller,
		Height:         height,
		Members:        len(input.Members),
		Shareholders:   len(shareholders),
	})

	return orgID, nil
}

// GetOrganization returns the organization record for id.
func (s *RegistryService) GetOrganization(ctx context.Context, id chain.Hash) (*models.Organization, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// GetParticipants returns the ids of every organization account has created,
// in creation order. Re-creations appear once per call.
func (s *RegistryService) GetParticipants(ctx context.Context, account chain.AccountID) ([]chain.Hash, error) {
	ids, _, err := s.ListParticipants(ctx, account, nil)
	return ids, err
}

// ListParticipants is GetParticipants with optional pagination; it also
// returns the total entry count.
func (s *RegistryService) ListParticipants(ctx context.Context, account chain.AccountID, page *utils.PaginationParams) ([]chain.Hash, int64, error) {
	participants, total, err := s.repo.ListParticipants(ctx, account, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list participants: %w", err)
	}

	ids := make([]chain.Hash, len(participants))
	for i, p := range participants {
		ids[i] = p.OrganizationID
	}
	return ids, total, nil
}

// GetMembers returns the organization's member list as stored. Unknown ids
// yield an empty list.
func (s *RegistryService) GetMembers(ctx context.Context, id chain.Hash) ([]models.OrganizationMember, error) {
	members, _, err := s.ListMembers(ctx, id, nil)
	return members, err
}

// ListMembers is GetMembers with optional pagination; it also returns the
// total record count.
func (s *RegistryService) ListMembers(ctx context.Context, id chain.Hash, page *utils.PaginationParams) ([]models.OrganizationMember, int64, error) {
	members, total, err := s.repo.ListMembers(ctx, id, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list organization members: %w", err)
	}
	return members, total, nil
}

// GetShare returns the amount account holds in organization id.
func (s *RegistryService) GetShare(ctx context.Context, id chain.Hash, account chain.AccountID) (chain.Balance, error) {
	share, err := s.repo.FindShare(ctx, id, account)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrShareNotFound
		}
		return 0, fmt.Errorf("failed to find share: %w", err)
	}
	return share.Amount, nil
}
