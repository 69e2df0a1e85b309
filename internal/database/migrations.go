package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// registryIndexes back the reverse lookups: participants by account, members
// and shares by organization, organizations by creator.
var registryIndexes = []index{
	{"participants", "idx_participants_account_id", "account_id, seq"},
	{"organization_members", "idx_org_members_organization_id", "organization_id, seq"},
	{"shares", "idx_shares_account_id", "account_id"},
	{"organizations", "idx_organizations_creator", "creator"},
}

// AddIndexes creates any missing registry index. It is safe to run repeatedly.
func AddIndexes(db *gorm.DB) error {
	for _, idx := range registryIndexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			slog.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		slog.Info("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}
