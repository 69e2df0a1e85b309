package models

import "github.com/yukikurage/organization-registry/internal/chain"

// Organization is the OrganizationInfo record keyed by its derived id.
type Organization struct {
	ID          chain.Hash `gorm:"type:varchar(66);primaryKey"`
	Name        []byte
	Description []byte
	Creator     chain.AccountID   `gorm:"type:varchar(66);not null"`
	CreatedAt   chain.BlockHeight `gorm:"not null;autoCreateTime:false"`
}
