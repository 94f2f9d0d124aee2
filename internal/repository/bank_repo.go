package repository

import (
	"context"

	"github.com/Krestdev/Creapp-sub005/internal/entity"
	"gorm.io/gorm"
)

type BankRepository struct {
	db *gorm.DB
}

func NewBankRepository(db *gorm.DB) *BankRepository {
	return &BankRepository{db: db}
}

// --- Banks ---

func (r *BankRepository) CreateBank(ctx context.Context, b *entity.Bank) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BankRepository) GetBank(ctx context.Context, id string) (*entity.Bank, error) {
	var b entity.Bank
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &b, nil
}

func (r *BankRepository) ListBanks(ctx context.Context) ([]entity.Bank, error) {
	var banks []entity.Bank
	err := r.db.WithContext(ctx).Order("label").Find(&banks).Error
	return banks, err
}

func (r *BankRepository) UpdateBank(ctx context.Context, b *entity.Bank) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --- Pay methods ---

func (r *BankRepository) CreatePayMethod(ctx context.Context, m *entity.PayMethod) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *BankRepository) ListPayMethods(ctx context.Context) ([]entity.PayMethod, error) {
	var methods []entity.PayMethod
	err := r.db.WithContext(ctx).Order("label").Find(&methods).Error
	return methods, err
}

// --- Signatairs ---

func (r *BankRepository) CreateSignatair(ctx context.Context, s *entity.Signatair) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *BankRepository) GetSignatair(ctx context.Context, id string) (*entity.Signatair, error) {
	var s entity.Signatair
	err := r.db.WithContext(ctx).
		Preload("Users").
		Preload("Users.User").
		Where("id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &s, nil
}

// ListSignatairs returns all signing rosters with members, the input the
// signatory authorizer indexes.
func (r *BankRepository) ListSignatairs(ctx context.Context) ([]entity.Signatair, error) {
	var signatairs []entity.Signatair
	err := r.db.WithContext(ctx).
		Preload("Users").
		Preload("Users.User").
		Order("created_at").
		Find(&signatairs).Error
	return signatairs, err
}

func (r *BankRepository) UpdateSignatair(ctx context.Context, s *entity.Signatair) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *BankRepository) AddSignatairUser(ctx context.Context, su *entity.SignatairUser) error {
	return r.db.WithContext(ctx).Create(su).Error
}

func (r *BankRepository) RemoveSignatairUser(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.SignatairUser{}, "id = ?", id).Error
}
