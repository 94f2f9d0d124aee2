package entity

import "time"

// Bank 账户 — a bank account, cash register or cash box payments draw from.
type Bank struct {
	ID    string `json:"id" gorm:"primaryKey;size:32"`
	Label string `json:"label" gorm:"size:200;not null"`
	Type  string `json:"type" gorm:"size:20;not null;default:BANK"` // BANK/CASH_REGISTER/CASH

	// BANK-typed accounts only
	AccountNumber string `json:"account_number" gorm:"size:50"`
	BankCode      string `json:"bank_code" gorm:"size:20"`
	BranchCode    string `json:"branch_code" gorm:"size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Bank) TableName() string {
	return "banks"
}

// 账户类型
const (
	BankTypeBank         = "BANK"
	BankTypeCashRegister = "CASH_REGISTER"
	BankTypeCash         = "CASH"
)

// PayMethod 支付方式 (virement, chèque, espèces, ...)
type PayMethod struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Label     string    `json:"label" gorm:"size:100;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PayMethod) TableName() string {
	return "pay_methods"
}

// Signatair signatory registration: who may sign payments for one
// (bank, pay method) pair. At most one record per pair — that record's user
// list is the whole authorization roster for the pair.
type Signatair struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	BankID    string    `json:"bank_id" gorm:"size:32;not null;uniqueIndex:idx_bank_paytype"`
	PayTypeID string    `json:"pay_type_id" gorm:"size:32;not null;uniqueIndex:idx_bank_paytype"`
	Mode      string    `json:"mode" gorm:"size:10;not null;default:ONE"` // ONE/BOTH
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Users []SignatairUser `json:"users,omitempty" gorm:"foreignKey:SignatairID"`
}

func (Signatair) TableName() string {
	return "signatairs"
}

// 签字模式. BOTH generalizes to "all listed users must sign".
const (
	SignModeOne  = "ONE"
	SignModeBoth = "BOTH"
)

// SignatairUser one authorized signer of a roster.
type SignatairUser struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	SignatairID string    `json:"signatair_id" gorm:"size:32;not null;uniqueIndex:idx_signatair_user"`
	UserID      string    `json:"user_id" gorm:"size:32;not null;uniqueIndex:idx_signatair_user"`
	CreatedAt   time.Time `json:"created_at"`

	// 关联
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (SignatairUser) TableName() string {
	return "signatair_users"
}
