package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommandRequest 询价单 — groups besoins into one solicitation sent out to
// providers; each responding provider contributes one quotation.
type CommandRequest struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Code      string    `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Label     string    `json:"label" gorm:"size:200;not null"`
	Status    string    `json:"status" gorm:"size:20;default:open"` // open/decided/closed
	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Besoins    []Besoin    `json:"besoins,omitempty" gorm:"foreignKey:CommandRequestID"`
	Quotations []Quotation `json:"quotations,omitempty" gorm:"foreignKey:CommandRequestID"`
}

func (CommandRequest) TableName() string {
	return "command_requests"
}

// CommandRequest 状态
const (
	CommandRequestStatusOpen    = "open"
	CommandRequestStatusDecided = "decided"
	CommandRequestStatusClosed  = "closed"
)

// Provider 供应商
type Provider struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Email     string    `json:"email" gorm:"size:200"`
	Phone     string    `json:"phone" gorm:"size:50"`
	Address   string    `json:"address" gorm:"size:500"`
	Status    string    `json:"status" gorm:"size:20;default:active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Provider) TableName() string {
	return "providers"
}

// Quotation one provider's offer against a command request.
type Quotation struct {
	ID               string     `json:"id" gorm:"primaryKey;size:32"`
	CommandRequestID string     `json:"command_request_id" gorm:"size:32;not null;index"`
	ProviderID       string     `json:"provider_id" gorm:"size:32;not null;index"`
	Currency         string     `json:"currency" gorm:"size:10;default:XOF"`
	ValidUntil       *time.Time `json:"valid_until"`
	Notes            string     `json:"notes" gorm:"type:text"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// 关联
	Provider *Provider          `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Elements []QuotationElement `json:"elements,omitempty" gorm:"foreignKey:QuotationID"`
}

func (Quotation) TableName() string {
	return "quotations"
}

// QuotationElement one priced line of a quotation, answering one besoin.
type QuotationElement struct {
	ID          string          `json:"id" gorm:"primaryKey;size:32"`
	QuotationID string          `json:"quotation_id" gorm:"size:32;not null;index"`
	BesoinID    string          `json:"besoin_id" gorm:"size:32;not null;index"` // which need this line answers
	Label       string          `json:"label" gorm:"size:200"`
	Quantity    float64         `json:"quantity" gorm:"type:decimal(10,2)"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(15,2)"`
	Status      string          `json:"status" gorm:"size:20;default:default"` // default/SELECTED
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (QuotationElement) TableName() string {
	return "quotation_elements"
}

// 报价行状态. At most one SELECTED element per (besoin, provider) pair across
// a group at completion — enforced by the selection flow, not by storage.
const (
	ElementStatusDefault  = "default"
	ElementStatusSelected = "SELECTED"
)
