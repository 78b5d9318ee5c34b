package expendituretype

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=expendituretype_repo.go -destination=mock/expendituretype_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, et *ExpenditureType) error
	FindAll(ctx context.Context) ([]ExpenditureType, error)
	FindByID(ctx context.Context, id string) (*ExpenditureType, error)
	Update(ctx context.Context, et *ExpenditureType) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, et *ExpenditureType) error {
	return r.db.WithContext(ctx).Create(et).Error
}

func (r *repository) FindAll(ctx context.Context) ([]ExpenditureType, error) {
	var types []ExpenditureType
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ExpenditureType, error) {
	var et ExpenditureType
	err := r.db.WithContext(ctx).First(&et, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &et, nil
}

func (r *repository) Update(ctx context.Context, et *ExpenditureType) error {
	return r.db.WithContext(ctx).Save(et).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&ExpenditureType{}, "id = ?", id).Error
}
