package models

import "github.com/yukikurage/organization-registry/internal/chain"

// Share is an account's stake in an organization.
type Share struct {
	OrganizationID chain.Hash      `gorm:"type:varchar(66);primaryKey"`
	AccountID      chain.AccountID `gorm:"type:varchar(66);primaryKey"`
	Amount         chain.Balance   `gorm:"not null"`
}
