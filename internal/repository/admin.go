package repository

import (
	"context"
	"errors"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/constant"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
	"gorm.io/gorm"
)

type AdminRepository struct {
	*baseRepository
}

func (ar AdminRepository) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*model.Admin, error) {
	ar.logger.Debugf("Get admin by username: %s", username)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var admin model.Admin
	if err := db.WithContext(ctx).Model(&model.Admin{}).Where(&model.Admin{Username: username}).First(&admin).Error; err != nil {
		return nil, err
	}

	return &admin, nil
}

func (ar AdminRepository) GetById(ctx context.Context, tx *gorm.DB, id string) (*model.Admin, error) {
	ar.logger.Debugf("Get admin by id: %s", id)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var admin model.Admin
	if err := db.WithContext(ctx).Model(&model.Admin{}).Where(&model.Admin{BaseModel: model.BaseModel{ID: id}}).First(&admin).Error; err != nil {
		return nil, err
	}

	return &admin, nil
}

func (ar *AdminRepository) UpdateCredentials(ctx context.Context, tx *gorm.DB, id, username, passwordHash string) error {
	ar.logger.Debugf("Update admin credentials: %s", id)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	result := db.WithContext(ctx).Model(&model.Admin{}).Where("id = ?", id).Updates(map[string]any{
		"username":      username,
		"password_hash": passwordHash,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// EnsureDefault seeds the admin account on first run. Used by cmd/migrate.
func (ar *AdminRepository) EnsureDefault(ctx context.Context, tx *gorm.DB, username, passwordHash string) error {
	ar.logger.Debugf("Ensure default admin exists: %s", username)

	db := ar.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return ar.withTx(db, func(tx2 *gorm.DB) error {
		var count int64
		if err := tx2.WithContext(ctx).Model(&model.Admin{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if passwordHash == "" {
			return errors.New("admin bootstrap requires AUTH_ADMIN_PASSWORD to be set")
		}

		return tx2.WithContext(ctx).Model(&model.Admin{}).Create(&model.Admin{
			Username:     username,
			PasswordHash: passwordHash,
		}).Error
	})
}
