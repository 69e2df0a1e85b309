package models

import "github.com/yukikurage/organization-registry/internal/chain"

// OrganizationMember is one entry of an organization's member list. Seq
// orders the list.
type OrganizationMember struct {
	Seq            uint64            `gorm:"primaryKey;autoIncrement"`
	OrganizationID chain.Hash        `gorm:"type:varchar(66);not null"`
	AccountID      chain.AccountID   `gorm:"type:varchar(66);not null"`
	JoinedAt       chain.BlockHeight `gorm:"not null"`
	IsShareholder  bool              `gorm:"not null"`
}
