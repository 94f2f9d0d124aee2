package repository

import (
	"context"

	"github.com/Krestdev/Creapp-sub005/internal/entity"
	"gorm.io/gorm"
)

type BesoinRepository struct {
	db *gorm.DB
}

func NewBesoinRepository(db *gorm.DB) *BesoinRepository {
	return &BesoinRepository{db: db}
}

func (r *BesoinRepository) Create(ctx context.Context, b *entity.Besoin) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BesoinRepository) Update(ctx context.Context, b *entity.Besoin) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BesoinRepository) FindByID(ctx context.Context, id string) (*entity.Besoin, error) {
	var b entity.Besoin
	err := r.db.WithContext(ctx).
		Preload("Reviews").
		Preload("Reviews.Validator").
		Preload("Owner").
		Where("id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &b, nil
}

// FindAllWithReviews returns the full besoin snapshot with review lists, the
// input the chain resolver runs on.
func (r *BesoinRepository) FindAllWithReviews(ctx context.Context) ([]entity.Besoin, error) {
	var besoins []entity.Besoin
	err := r.db.WithContext(ctx).
		Preload("Reviews").
		Preload("Owner").
		Order("created_at DESC").
		Find(&besoins).Error
	return besoins, err
}

type BesoinListParams struct {
	State      string
	CategoryID string
	UserID     string
	Page       int
	Size       int
}

func (r *BesoinRepository) List(ctx context.Context, params BesoinListParams) ([]entity.Besoin, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Besoin{})
	if params.State != "" {
		query = query.Where("state = ?", params.State)
	}
	if params.CategoryID != "" {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.UserID != "" {
		query = query.Where("user_id = ?", params.UserID)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var besoins []entity.Besoin
	err := query.Preload("Reviews").Preload("Owner").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&besoins).Error
	return besoins, total, err
}

// CreateReview records one validator's decision. The unique index on
// (besoin_id, validator_id) rejects a double vote at the storage layer.
func (r *BesoinRepository) CreateReview(ctx context.Context, review *entity.BesoinReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// HasReview reports whether validatorID already decided on the besoin.
func (r *BesoinRepository) HasReview(ctx context.Context, besoinID, validatorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.BesoinReview{}).
		Where("besoin_id = ? AND validator_id = ?", besoinID, validatorID).
		Count(&count).Error
	return count > 0, err
}
