package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// Repositories 仓库集合
type Repositories struct {
	User      *UserRepository
	Besoin    *BesoinRepository
	Category  *CategoryRepository
	Quotation *QuotationRepository
	Bank      *BankRepository
	Payment   *PaymentRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Besoin:    NewBesoinRepository(db),
		Category:  NewCategoryRepository(db),
		Quotation: NewQuotationRepository(db),
		Bank:      NewBankRepository(db),
		Payment:   NewPaymentRepository(db),
	}
}

// translateNotFound maps gorm's sentinel to the repository one.
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
