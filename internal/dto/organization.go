package dto

import (
	"github.com/yukikurage/organization-registry/internal/chain"
	"github.com/yukikurage/organization-registry/internal/models"
	"github.com/yukikurage/organization-registry/internal/utils"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID          chain.Hash        `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Creator     chain.AccountID   `json:"creator"`
	CreatedAt   chain.BlockHeight `json:"created_at"`
}

// OrganizationMemberDTO represents a member record of an organization
type OrganizationMemberDTO struct {
	AccountID     chain.AccountID   `json:"account_id"`
	JoinedAt      chain.BlockHeight `json:"joined_at"`
	IsShareholder bool              `json:"is_shareholder"`
}

// MemberListResponse represents a page of an organization's member list
type MemberListResponse struct {
	OrganizationID chain.Hash               `json:"organization_id"`
	Members        []OrganizationMemberDTO  `json:"members"`
	Pagination     utils.PaginationResponse `json:"pagination"`
}

// ParticipantListResponse represents a page of an account's organizations
type ParticipantListResponse struct {
	AccountID     chain.AccountID          `json:"account_id"`
	Organizations []chain.Hash             `json:"organizations"`
	Pagination    utils.PaginationResponse `json:"pagination"`
}

// ShareDTO represents an account's share in an organization
type ShareDTO struct {
	OrganizationID chain.Hash      `json:"organization_id"`
	AccountID      chain.AccountID `json:"account_id"`
	Amount         chain.Balance   `json:"amount"`
}

// CreateOrganizationResponse is returned by a successful creation
type CreateOrganizationResponse struct {
	ID chain.Hash `json:"id"`
}

// ToOrganizationDTO converts an Organization model to OrganizationDTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:          org.ID,
		Name:        string(org.Name),
		Description: string(org.Description),
		Creator:     org.Creator,
		CreatedAt:   org.CreatedAt,
	}
}

// ToOrganizationMemberDTO converts a member to DTO
func ToOrganizationMemberDTO(member models.OrganizationMember) OrganizationMemberDTO {
	return OrganizationMemberDTO{
		AccountID:     member.AccountID,
		JoinedAt:      member.JoinedAt,
		IsShareholder: member.IsShareholder,
	}
}

// ToMemberListResponse converts a page of members to a response
func ToMemberListResponse(orgID chain.Hash, members []models.OrganizationMember, page utils.PaginationParams, total int64) MemberListResponse {
	memberDTOs := make([]OrganizationMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToOrganizationMemberDTO(member)
	}

	return MemberListResponse{
		OrganizationID: orgID,
		Members:        memberDTOs,
		Pagination:     utils.PaginationResponse{Page: page.Page, Limit: page.Limit, Total: total},
	}
}
