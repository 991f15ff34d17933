package repository

import (
	"context"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/constant"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
	"gorm.io/gorm"
)

type AccessTokenRepository struct {
	*baseRepository
}

func (ar AccessTokenRepository) List(ctx context.Context, tx *gorm.DB) ([]model.AccessToken, error) {
	ar.logger.Debug("List access tokens")

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var tokens []model.AccessToken
	if err := db.WithContext(ctx).Model(&model.AccessToken{}).Order("created_at desc").Find(&tokens).Error; err != nil {
		return nil, err
	}

	return tokens, nil
}

// GetByToken resolves the opaque bearer secret a user presents at login.
func (ar AccessTokenRepository) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*model.AccessToken, error) {
	ar.logger.Debug("Get access token by token value")

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var accessToken model.AccessToken
	if err := db.WithContext(ctx).Model(&model.AccessToken{}).Where(&model.AccessToken{Token: token}).First(&accessToken).Error; err != nil {
		return nil, err
	}

	return &accessToken, nil
}

func (ar *AccessTokenRepository) Create(ctx context.Context, tx *gorm.DB, newToken *model.AccessToken) error {
	ar.logger.Debugf("Create access token: %s", newToken.ID)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.AccessToken{}).Create(newToken).Error; err != nil {
		return err
	}

	return nil
}

func (ar *AccessTokenRepository) SetBlocked(ctx context.Context, tx *gorm.DB, id string, blocked bool) error {
	ar.logger.Debugf("Set access token %s blocked: %v", id, blocked)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	result := db.WithContext(ctx).Model(&model.AccessToken{}).Where("id = ?", id).Update("is_blocked", blocked)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (ar *AccessTokenRepository) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	ar.logger.Debugf("Delete access token: %s", id)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Where("id = ?", id).Delete(&model.AccessToken{}).Error; err != nil {
		return err
	}

	return nil
}
