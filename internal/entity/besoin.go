package entity

import "time"

// Besoin 采购需求 (procurement request line)
type Besoin struct {
	ID         string     `json:"id" gorm:"primaryKey;size:32"`
	Label      string     `json:"label" gorm:"size:200;not null"`
	Quantity   float64    `json:"quantity" gorm:"type:decimal(10,2);not null"`
	Unit       string     `json:"unit" gorm:"size:20;default:pcs"`
	UserID     string     `json:"user_id" gorm:"size:32;not null;index"`
	CategoryID string     `json:"category_id" gorm:"size:32;not null;index"`
	ProjectRef string     `json:"project_ref" gorm:"size:100"`
	DueDate    *time.Time `json:"due_date"`
	State      string     `json:"state" gorm:"size:20;not null;default:pending;index"`

	// 关联 — grouped into a command request once sourcing starts
	CommandRequestID *string `json:"command_request_id" gorm:"size:32;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Owner   *User          `json:"owner,omitempty" gorm:"foreignKey:UserID"`
	Reviews []BesoinReview `json:"reviews,omitempty" gorm:"foreignKey:BesoinID"`
}

func (Besoin) TableName() string {
	return "besoins"
}

// Besoin 状态
const (
	BesoinStatePending   = "pending"
	BesoinStateInReview  = "in_review"
	BesoinStateValidated = "validated"
	BesoinStateRejected  = "rejected"
)

// IsTerminal reports whether the besoin can no longer be acted on.
func (b *Besoin) IsTerminal() bool {
	return b.State == BesoinStateValidated || b.State == BesoinStateRejected
}

// BesoinReview one validator's recorded decision on a besoin (the reviewee
// list). Unique per (besoin, validator): a validator never double-counts.
type BesoinReview struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	BesoinID    string    `json:"besoin_id" gorm:"size:32;not null;uniqueIndex:idx_besoin_validator"`
	ValidatorID string    `json:"validator_id" gorm:"size:32;not null;uniqueIndex:idx_besoin_validator"`
	Decision    string    `json:"decision" gorm:"size:20;not null"` // approved/rejected
	Comment     string    `json:"comment" gorm:"type:text"`
	DecidedAt   time.Time `json:"decided_at"`

	// 关联
	Validator *User `json:"validator,omitempty" gorm:"foreignKey:ValidatorID"`
}

func (BesoinReview) TableName() string {
	return "besoin_reviews"
}

// 审批决定
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)
