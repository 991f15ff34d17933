package repository

import (
	"context"
	"time"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/constant"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
	"gorm.io/gorm"
)

type GoogleAuthConfigRepository struct {
	*baseRepository
}

func (gr GoogleAuthConfigRepository) GetById(ctx context.Context, tx *gorm.DB, id string) (*model.GoogleAuthConfig, error) {
	gr.logger.Debugf("Get Google auth config by id: %s", id)

	db := gr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var config model.GoogleAuthConfig
	if err := db.WithContext(ctx).Model(&model.GoogleAuthConfig{}).Where(&model.GoogleAuthConfig{BaseModel: model.BaseModel{ID: id}}).First(&config).Error; err != nil {
		return nil, err
	}

	return &config, nil
}

// GetActive returns the single active configuration, or gorm.ErrRecordNotFound
// when no configuration has been activated yet.
func (gr GoogleAuthConfigRepository) GetActive(ctx context.Context, tx *gorm.DB) (*model.GoogleAuthConfig, error) {
	gr.logger.Debug("Get active Google auth config")

	db := gr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var config model.GoogleAuthConfig
	if err := db.WithContext(ctx).Model(&model.GoogleAuthConfig{}).Where("is_active = ?", true).First(&config).Error; err != nil {
		return nil, err
	}

	return &config, nil
}

func (gr GoogleAuthConfigRepository) List(ctx context.Context, tx *gorm.DB) ([]model.GoogleAuthConfig, error) {
	gr.logger.Debug("List Google auth configs")

	db := gr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var configs []model.GoogleAuthConfig
	if err := db.WithContext(ctx).Model(&model.GoogleAuthConfig{}).Order("created_at desc").Find(&configs).Error; err != nil {
		return nil, err
	}

	return configs, nil
}

func (gr *GoogleAuthConfigRepository) Create(ctx context.Context, tx *gorm.DB, newConfig *model.GoogleAuthConfig) error {
	gr.logger.Debugf("Create Google auth config for client id: %s", newConfig.ClientID)

	db := gr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if newConfig.AuthURI == "" {
		newConfig.AuthURI = model.DefaultAuthURI
	}
	if newConfig.TokenURI == "" {
		newConfig.TokenURI = model.DefaultTokenURI
	}

	if err := db.WithContext(ctx).Model(&model.GoogleAuthConfig{}).Create(newConfig).Error; err != nil {
		return err
	}

	return nil
}

func (gr *GoogleAuthConfigRepository) Update(ctx context.Context, tx *gorm.DB, id string, updated model.GoogleAuthConfig) error {
	gr.logger.Debugf("Update Google auth config: %s", id)

	db := gr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.GoogleAuthConfig{}).Where("id = ?", id).Updates(map[string]any{
		"client_id":     updated.ClientID,
		"client_secret": updated.ClientSecret,
		"project_id":    updated.ProjectID,
		"auth_uri":      updated.AuthURI,
		"token_uri":     updated.TokenURI,
	}).Error; err != nil {
		return err
	}

	return nil
}

func (gr *GoogleAuthConfigRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	gr.logger.Debugf("Delete Google auth config: %s", id)

	db := gr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Where("id = ?", id).Delete(&model.GoogleAuthConfig{}).Error; err != nil {
		return err
	}

	return nil
}

// Activate marks one configuration active and every other inactive in the same
// transaction, so at most one row is ever active.
func (gr *GoogleAuthConfigRepository) Activate(ctx context.Context, tx *gorm.DB, id string) error {
	gr.logger.Debugf("Activate Google auth config: %s", id)

	db := gr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return gr.withTx(db, func(tx2 *gorm.DB) error {
		if err := tx2.WithContext(ctx).Model(&model.GoogleAuthConfig{}).Where("id <> ?", id).Update("is_active", false).Error; err != nil {
			return err
		}

		result := tx2.WithContext(ctx).Model(&model.GoogleAuthConfig{}).Where("id = ?", id).Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

func (gr *GoogleAuthConfigRepository) Deactivate(ctx context.Context, tx *gorm.DB, id string) error {
	gr.logger.Debugf("Deactivate Google auth config: %s", id)

	db := gr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.GoogleAuthConfig{}).Where("id = ?", id).Update("is_active", false).Error; err != nil {
		return err
	}

	return nil
}

// SaveTokens persists an exchanged or refreshed token set onto a configuration.
// The signature deliberately matches gmail.TokenSaver.
func (gr *GoogleAuthConfigRepository) SaveTokens(ctx context.Context, configID, accessToken, refreshToken string, expiry time.Time) error {
	gr.logger.Debugf("Save OAuth tokens for config: %s", configID)

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	updates := map[string]any{
		"access_token": accessToken,
		"token_expiry": expiry,
	}
	// An empty refresh token means the grant did not rotate it, keep the old one.
	if refreshToken != "" {
		updates["refresh_token"] = refreshToken
	}

	result := gr.db.WithContext(ctx).Model(&model.GoogleAuthConfig{}).Where("id = ?", configID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
