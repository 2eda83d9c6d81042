package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"learnhub/models"
)

// ConnectTestDb wires the global instance to an in-memory sqlite
// database. Each call gets a fresh schema.
func ConnectTestDb() error {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	// A private in-memory database exists per connection, so the pool
	// must stay at a single connection.
	sqlDb, err := db.DB()
	if err != nil {
		return err
	}
	sqlDb.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Purchase{},
		&models.Category{},
		&models.Course{},
		&models.Module{},
		&models.Lesson{},
		&models.Quiz{},
		&models.Enrollment{},
	)
	if err != nil {
		return err
	}

	Database = DbInstance{Db: db}
	return nil
}
