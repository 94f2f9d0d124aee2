package entity

import "time"

// Category 需求类目, owns the ordered validation chain for its besoins.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Label     string    `json:"label" gorm:"size:200;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Validators []CategoryValidator `json:"validators,omitempty" gorm:"foreignKey:CategoryID"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryValidator one entry of a category's approval chain. Rank orders the
// chain; equal ranks mean any-of at that step. Completion is checked
// structurally (set of validators), ranks are presentation order.
type CategoryValidator struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	CategoryID string    `json:"category_id" gorm:"size:32;not null;uniqueIndex:idx_category_user"`
	UserID     string    `json:"user_id" gorm:"size:32;not null;uniqueIndex:idx_category_user"`
	Rank       int       `json:"rank" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`

	// 关联
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (CategoryValidator) TableName() string {
	return "category_validators"
}
