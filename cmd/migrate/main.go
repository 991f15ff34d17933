package main

import (
	"context"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/auth"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/config"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/database"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/env"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/repository"
	"go.uber.org/zap"
)

func init() {
	env.LoadEnv(".env")
}

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()
	cfg := config.GetConfig()

	logger.Infof("Database configuration: %+v", cfg.DB)

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	db.Exec(`CREATE EXTENSION IF NOT EXISTS citext`)

	migrateErr := db.AutoMigrate(&model.Admin{}, &model.GoogleAuthConfig{}, &model.AccessToken{}, &model.Email{})
	if migrateErr != nil {
		logger.Panic(migrateErr)
	}

	if cfg.Auth.ADMIN_PASSWORD == "" {
		logger.Warn("AUTH_ADMIN_PASSWORD not set, skipping default admin seed")
		return
	}

	passwordHash, err := auth.HashPassword(cfg.Auth.ADMIN_PASSWORD)
	if err != nil {
		logger.Panic(err)
	}

	repo := repository.NewRepository(db, logger)
	if err := repo.Admin.EnsureDefault(context.Background(), nil, cfg.Auth.ADMIN_USERNAME, passwordHash); err != nil {
		logger.Panic(err)
	}

	logger.Info("Migration completed")
}
