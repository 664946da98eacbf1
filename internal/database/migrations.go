package database

import (
	"log"
	"log/slog"

	"email-assistant/internal/database/versions/migration_0"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func GetMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	migrator := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID:      "0",
			Migrate: migration_0.Migration,
		},
	})

	migrator.InitSchema(func(txn *gorm.DB) error {
		// This is run by the migrator if no previous migration is detected. It
		// allows it to bypass running all the migrations sequentially and just create
		// the latest database state.

		log.Println("clean database detected, running full schema initialization")

		dbType := db.Dialector.Name()
		if dbType == "sqlite" || dbType == "sqlite3" {
			// Sqlite does not enable foreign key constraints by default, so we need to enable them manually.
			if err := txn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
				slog.Error("error enabling foreign keys for SQLite", "error", err)
			}
		}

		if err := db.AutoMigrate(&User{}, &Chat{}, &Message{}); err != nil {
			return err
		}

		// Backstop for the one-active-chat-per-user invariant.
		return txn.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_chats_one_active_per_user ON chats(user_id) WHERE status = 'active'`).Error
	})

	return migrator
}
