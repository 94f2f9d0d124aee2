package repository

import (
	"context"

	"github.com/Krestdev/Creapp-sub005/internal/entity"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).Order("name").Find(&users).Error
	return users, err
}

// --- Departments ---

// ListDepartments returns the full department snapshot with members, the
// input the chain resolver runs on.
func (r *UserRepository) ListDepartments(ctx context.Context) ([]entity.Department, error) {
	var departments []entity.Department
	err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Members.User").
		Order("label").
		Find(&departments).Error
	return departments, err
}

func (r *UserRepository) CreateDepartment(ctx context.Context, d *entity.Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *UserRepository) GetDepartment(ctx context.Context, id string) (*entity.Department, error) {
	var d entity.Department
	err := r.db.WithContext(ctx).
		Preload("Members").
		Preload("Members.User").
		Where("id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &d, nil
}

func (r *UserRepository) AddMember(ctx context.Context, m *entity.DepartmentMember) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *UserRepository) UpdateMember(ctx context.Context, m *entity.DepartmentMember) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *UserRepository) RemoveMember(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.DepartmentMember{}, "id = ?", id).Error
}
