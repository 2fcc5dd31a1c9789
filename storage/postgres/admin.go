package postgres

import (
	"context"
	"errors"

	adminModel "msc-booking/models/admin"
	"msc-booking/storage"

	"gorm.io/gorm"
)

type adminRepo struct {
	db *gorm.DB
}

func (r *adminRepo) Create(ctx context.Context, a *adminModel.Admin) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return storage.ErrDuplicateKey
	}
	return err
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*adminModel.Admin, error) {
	var a adminModel.Admin
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *adminRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&adminModel.Admin{}).Count(&count).Error
	return count, err
}
