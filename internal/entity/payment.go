package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest 付款请求 — drawn from one bank via one pay method.
// BankID/MethodID stay nil until resolved; an unresolved payment can never
// be signed.
type PaymentRequest struct {
	ID          string          `json:"id" gorm:"primaryKey;size:32"`
	Code        string          `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Label       string          `json:"label" gorm:"size:200;not null"`
	Beneficiary string          `json:"beneficiary" gorm:"size:200"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	Currency    string          `json:"currency" gorm:"size:10;default:XOF"`

	BankID   *string `json:"bank_id" gorm:"size:32;index"`
	MethodID *string `json:"method_id" gorm:"size:32;index"`

	Status string `json:"status" gorm:"size:20;not null;default:unsigned;index"`

	RequestedBy string     `json:"requested_by" gorm:"size:32"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Notes       string     `json:"notes" gorm:"type:text"`

	// 关联
	Bank       *Bank              `json:"bank,omitempty" gorm:"foreignKey:BankID"`
	Method     *PayMethod         `json:"method,omitempty" gorm:"foreignKey:MethodID"`
	Signatures []PaymentSignature `json:"signatures,omitempty" gorm:"foreignKey:PaymentID"`
}

func (PaymentRequest) TableName() string {
	return "payment_requests"
}

// 付款状态
const (
	PaymentStatusUnsigned        = "unsigned"
	PaymentStatusPartiallySigned = "partially_signed"
	PaymentStatusSigned          = "signed"
	PaymentStatusPaid            = "paid"
	PaymentStatusRejected        = "rejected"
	PaymentStatusCancelled       = "cancelled"
)

// AwaitsSignature reports whether the payment still accepts signatures.
func (p *PaymentRequest) AwaitsSignature() bool {
	return p.Status == PaymentStatusUnsigned || p.Status == PaymentStatusPartiallySigned
}

// PaymentSignature one authorized user's recorded signature. Unique per
// (payment, user): the BOTH mode tracks the signer set, not a boolean.
type PaymentSignature struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	PaymentID string    `json:"payment_id" gorm:"size:32;not null;uniqueIndex:idx_payment_signer"`
	UserID    string    `json:"user_id" gorm:"size:32;not null;uniqueIndex:idx_payment_signer"`
	SignedAt  time.Time `json:"signed_at"`

	// 关联
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (PaymentSignature) TableName() string {
	return "payment_signatures"
}
