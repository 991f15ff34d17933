package repository

import (
	"context"

	"github.com/Vikramsingh92639/email-nexus-netflix/internal/constant"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmailRepository struct {
	*baseRepository
}

// Upsert inserts or refreshes a cached email keyed by the provider message id.
// is_hidden is excluded from the update set: visibility is user state and a
// re-fetch must not clobber it. The signature matches gmail.EmailStore.
func (er *EmailRepository) Upsert(ctx context.Context, email model.Email) error {
	er.logger.Debugf("Upsert email: %s", email.ID)

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := er.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"from_address", "to_address", "subject", "body", "date", "is_read", "updated_at",
		}),
	}).Create(&email).Error; err != nil {
		return err
	}

	return nil
}

func (er EmailRepository) List(ctx context.Context, tx *gorm.DB, page, pageSize uint) ([]model.Email, int64, error) {
	er.logger.Debugf("List emails, page: %d, pageSize: %d", page, pageSize)

	db := er.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if page < 1 {
		page = constant.DefaultPage
	}
	if pageSize < 1 || pageSize > constant.MaxPageSize {
		pageSize = constant.DefaultPageSize
	}

	var total int64
	if err := db.WithContext(ctx).Model(&model.Email{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var emails []model.Email
	if err := db.WithContext(ctx).Model(&model.Email{}).
		Order("date desc").
		Offset(int((page - 1) * pageSize)).
		Limit(int(pageSize)).
		Find(&emails).Error; err != nil {
		return nil, 0, err
	}

	return emails, total, nil
}

func (er EmailRepository) GetById(ctx context.Context, tx *gorm.DB, id string) (*model.Email, error) {
	er.logger.Debugf("Get email by id: %s", id)

	db := er.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var email model.Email
	if err := db.WithContext(ctx).Model(&model.Email{}).Where("id = ?", id).First(&email).Error; err != nil {
		return nil, err
	}

	return &email, nil
}

// ToggleHidden flips the visibility flag of one cached email and returns the
// new value.
func (er *EmailRepository) ToggleHidden(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	er.logger.Debugf("Toggle email visibility: %s", id)

	db := er.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var hidden bool
	txErr := er.withTx(db, func(tx2 *gorm.DB) error {
		var email model.Email
		if err := tx2.WithContext(ctx).Model(&model.Email{}).Where("id = ?", id).First(&email).Error; err != nil {
			return err
		}

		hidden = !email.IsHidden
		return tx2.WithContext(ctx).Model(&model.Email{}).Where("id = ?", id).Update("is_hidden", hidden).Error
	})

	return hidden, txErr
}
