package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Krestdev/Creapp-sub005/internal/entity"
	"github.com/Krestdev/Creapp-sub005/internal/repository"
)

// UserService 用户与部门服务
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// ListAll 获取所有用户
func (s *UserService) ListAll(ctx context.Context) ([]entity.User, error) {
	return s.repo.List(ctx)
}

// Get 获取用户详情
func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.repo.FindByID(ctx, id)
}

// --- Departments ---

// CreateDepartmentRequest 创建部门请求
type CreateDepartmentRequest struct {
	Label string `json:"label" binding:"required"`
}

// CreateDepartment 创建部门
func (s *UserService) CreateDepartment(ctx context.Context, req *CreateDepartmentRequest) (*entity.Department, error) {
	now := time.Now()
	d := &entity.Department{
		ID:        generateID(),
		Label:     req.Label,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateDepartment(ctx, d); err != nil {
		return nil, fmt.Errorf("create department: %w", err)
	}
	return d, nil
}

// ListDepartments 部门列表（含成员）
func (s *UserService) ListDepartments(ctx context.Context) ([]entity.Department, error) {
	return s.repo.ListDepartments(ctx)
}

// GetDepartment 部门详情
func (s *UserService) GetDepartment(ctx context.Context, id string) (*entity.Department, error) {
	return s.repo.GetDepartment(ctx, id)
}

// AddMemberRequest 添加部门成员请求
type AddMemberRequest struct {
	UserID         string `json:"user_id" binding:"required"`
	Validator      bool   `json:"validator"`
	Chief          bool   `json:"chief"`
	FinalValidator bool   `json:"final_validator"`
}

// AddMember 添加部门成员
func (s *UserService) AddMember(ctx context.Context, departmentID string, req *AddMemberRequest) (*entity.DepartmentMember, error) {
	if _, err := s.repo.FindByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if _, err := s.repo.GetDepartment(ctx, departmentID); err != nil {
		return nil, fmt.Errorf("find department: %w", err)
	}

	now := time.Now()
	m := &entity.DepartmentMember{
		ID:             generateID(),
		DepartmentID:   departmentID,
		UserID:         req.UserID,
		Validator:      req.Validator,
		Chief:          req.Chief,
		FinalValidator: req.FinalValidator,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.AddMember(ctx, m); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	return m, nil
}

// UpdateMemberRequest 更新成员能力标志请求
type UpdateMemberRequest struct {
	Validator      *bool `json:"validator"`
	Chief          *bool `json:"chief"`
	FinalValidator *bool `json:"final_validator"`
}

// UpdateMember 更新成员能力标志
func (s *UserService) UpdateMember(ctx context.Context, departmentID, memberID string, req *UpdateMemberRequest) (*entity.DepartmentMember, error) {
	d, err := s.repo.GetDepartment(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("find department: %w", err)
	}
	var member *entity.DepartmentMember
	for i := range d.Members {
		if d.Members[i].ID == memberID {
			member = &d.Members[i]
			break
		}
	}
	if member == nil {
		return nil, repository.ErrNotFound
	}

	if req.Validator != nil {
		member.Validator = *req.Validator
	}
	if req.Chief != nil {
		member.Chief = *req.Chief
	}
	if req.FinalValidator != nil {
		member.FinalValidator = *req.FinalValidator
	}
	member.UpdatedAt = time.Now()

	if err := s.repo.UpdateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return member, nil
}

// RemoveMember 移除部门成员
func (s *UserService) RemoveMember(ctx context.Context, memberID string) error {
	return s.repo.RemoveMember(ctx, memberID)
}
