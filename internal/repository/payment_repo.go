package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Krestdev/Creapp-sub005/internal/entity"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *entity.PaymentRequest) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) Update(ctx context.Context, p *entity.PaymentRequest) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*entity.PaymentRequest, error) {
	var p entity.PaymentRequest
	err := r.db.WithContext(ctx).
		Preload("Signatures").
		Preload("Signatures.User").
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &p, nil
}

type PaymentListParams struct {
	Status string
	BankID string
	Page   int
	Size   int
}

func (r *PaymentRepository) List(ctx context.Context, params PaymentListParams) ([]entity.PaymentRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.PaymentRequest{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.BankID != "" {
		query = query.Where("bank_id = ?", params.BankID)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var payments []entity.PaymentRequest
	err := query.Preload("Signatures").
		Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&payments).Error
	return payments, total, err
}

// FindAwaitingSignature returns payments still open for signing, with their
// signature rows, for the per-user actionable filter.
func (r *PaymentRepository) FindAwaitingSignature(ctx context.Context) ([]entity.PaymentRequest, error) {
	var payments []entity.PaymentRequest
	err := r.db.WithContext(ctx).
		Preload("Signatures").
		Where("status IN ?", []string{entity.PaymentStatusUnsigned, entity.PaymentStatusPartiallySigned}).
		Order("created_at").
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) CreateSignature(ctx context.Context, s *entity.PaymentSignature) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// NextCode generates a sequential payment code like PAY-20260829-0007.
func (r *PaymentRepository) NextCode(ctx context.Context) (string, error) {
	day := time.Now().Format("20060102")
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.PaymentRequest{}).
		Where("code LIKE ?", "PAY-"+day+"-%").
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PAY-%s-%04d", day, count+1), nil
}
