package repository

import (
	"fmt"

	"flowboard/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// OpenSQLite opens a sqlite database file, or an in-memory one for ":memory:".
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// One connection keeps an in-memory database alive and serialises writers.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Migrate creates tables and the unique indexes the API relies on for conflict detection.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Board{}, &model.Task{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// NewStores builds the gorm-backed stores over db.
func NewStores(db *gorm.DB) Stores {
	return Stores{
		Users:  NewUserRepository(db),
		Boards: NewBoardRepository(db),
		Tasks:  NewTaskRepository(db),
	}
}
