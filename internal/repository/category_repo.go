package repository

import (
	"context"

	"github.com/Krestdev/Creapp-sub005/internal/entity"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	var c entity.Category
	err := r.db.WithContext(ctx).
		Preload("Validators", func(db *gorm.DB) *gorm.DB { return db.Order("rank") }).
		Preload("Validators.User").
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).
		Preload("Validators", func(db *gorm.DB) *gorm.DB { return db.Order("rank") }).
		Order("label").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) AddValidator(ctx context.Context, v *entity.CategoryValidator) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *CategoryRepository) RemoveValidator(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.CategoryValidator{}, "id = ?", id).Error
}
