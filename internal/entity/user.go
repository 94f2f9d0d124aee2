package entity

import "time"

// User 后台用户
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	Email        string     `json:"email" gorm:"size:200;uniqueIndex;not null"`
	Name         string     `json:"name" gorm:"size:200;not null"`
	PasswordHash string     `json:"-" gorm:"size:100;not null"`
	Status       string     `json:"status" gorm:"size:20;default:active"` // active/disabled
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// 关联
	Memberships []DepartmentMember `json:"memberships,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// Department 部门
type Department struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Label     string    `json:"label" gorm:"size:200;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	Members []DepartmentMember `json:"members,omitempty" gorm:"foreignKey:DepartmentID"`
}

func (Department) TableName() string {
	return "departments"
}

// DepartmentMember department membership with capability flags. Flags ride the
// membership row; holding final_validator in any department applies everywhere.
type DepartmentMember struct {
	ID           string `json:"id" gorm:"primaryKey;size:32"`
	DepartmentID string `json:"department_id" gorm:"size:32;not null;uniqueIndex:idx_dept_member"`
	UserID       string `json:"user_id" gorm:"size:32;not null;uniqueIndex:idx_dept_member"`

	Validator      bool `json:"validator" gorm:"default:false"`
	Chief          bool `json:"chief" gorm:"default:false"`
	FinalValidator bool `json:"final_validator" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (DepartmentMember) TableName() string {
	return "department_members"
}
