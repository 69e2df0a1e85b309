package models

import "github.com/yukikurage/organization-registry/internal/chain"

// Participant is one entry of an account's organization index. Entries are
// append-only; Seq orders them.
type Participant struct {
	Seq            uint64          `gorm:"primaryKey;autoIncrement"`
	AccountID      chain.AccountID `gorm:"type:varchar(66);not null"`
	OrganizationID chain.Hash      `gorm:"type:varchar(66);not null"`
}
