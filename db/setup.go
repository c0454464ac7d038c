package db

import (
	"github.com/taskhive/taskhive/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres connection and returns the handle. Callers
// inject it where needed; there is no package-level session.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func Migrate(database *gorm.DB) error {
	tables := []interface{}{
		&models.Member{},
		&models.Project{},
		&models.Task{},
	}

	migrator := database.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := database.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
