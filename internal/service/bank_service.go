package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Krestdev/Creapp-sub005/internal/entity"
	"github.com/Krestdev/Creapp-sub005/internal/repository"
	"github.com/Krestdev/Creapp-sub005/internal/workflow"
)

// BankService 账户/支付方式/签字人登记服务
type BankService struct {
	repo *repository.BankRepository
}

// NewBankService 创建账户服务
func NewBankService(repo *repository.BankRepository) *BankService {
	return &BankService{repo: repo}
}

// CreateBankRequest 创建账户请求
type CreateBankRequest struct {
	Label         string `json:"label" binding:"required"`
	Type          string `json:"type" binding:"required,oneof=BANK CASH_REGISTER CASH"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	BranchCode    string `json:"branch_code"`
}

// CreateBank 创建账户. Account coordinates only make sense on BANK accounts.
func (s *BankService) CreateBank(ctx context.Context, req *CreateBankRequest) (*entity.Bank, error) {
	if req.Type != entity.BankTypeBank && req.AccountNumber != "" {
		return nil, workflow.NewPreconditionError("create bank", "account coordinates only apply to BANK accounts")
	}

	now := time.Now()
	b := &entity.Bank{
		ID:            generateID(),
		Label:         req.Label,
		Type:          req.Type,
		AccountNumber: req.AccountNumber,
		BankCode:      req.BankCode,
		BranchCode:    req.BranchCode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.CreateBank(ctx, b); err != nil {
		return nil, fmt.Errorf("create bank: %w", err)
	}
	return b, nil
}

// ListBanks 账户列表
func (s *BankService) ListBanks(ctx context.Context) ([]entity.Bank, error) {
	return s.repo.ListBanks(ctx)
}

// CreatePayMethodRequest 创建支付方式请求
type CreatePayMethodRequest struct {
	Label string `json:"label" binding:"required"`
}

// CreatePayMethod 创建支付方式
func (s *BankService) CreatePayMethod(ctx context.Context, req *CreatePayMethodRequest) (*entity.PayMethod, error) {
	now := time.Now()
	m := &entity.PayMethod{
		ID:        generateID(),
		Label:     req.Label,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreatePayMethod(ctx, m); err != nil {
		return nil, fmt.Errorf("create pay method: %w", err)
	}
	return m, nil
}

// ListPayMethods 支付方式列表
func (s *BankService) ListPayMethods(ctx context.Context) ([]entity.PayMethod, error) {
	return s.repo.ListPayMethods(ctx)
}

// CreateSignatairRequest 创建签字人登记请求
type CreateSignatairRequest struct {
	BankID    string   `json:"bank_id" binding:"required"`
	PayTypeID string   `json:"pay_type_id" binding:"required"`
	Mode      string   `json:"mode" binding:"required,oneof=ONE BOTH"`
	UserIDs   []string `json:"user_ids" binding:"required,min=1"`
}

// CreateSignatair registers the signing roster for one (bank, pay method)
// pair. The unique index on the pair keeps the roster single-sourced.
func (s *BankService) CreateSignatair(ctx context.Context, req *CreateSignatairRequest) (*entity.Signatair, error) {
	if _, err := s.repo.GetBank(ctx, req.BankID); err != nil {
		return nil, fmt.Errorf("find bank: %w", err)
	}

	now := time.Now()
	sig := &entity.Signatair{
		ID:        generateID(),
		BankID:    req.BankID,
		PayTypeID: req.PayTypeID,
		Mode:      req.Mode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	seen := make(map[string]struct{}, len(req.UserIDs))
	for _, userID := range req.UserIDs {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		sig.Users = append(sig.Users, entity.SignatairUser{
			ID:          generateID(),
			SignatairID: sig.ID,
			UserID:      userID,
			CreatedAt:   now,
		})
	}

	if err := s.repo.CreateSignatair(ctx, sig); err != nil {
		return nil, fmt.Errorf("create signatair: %w", err)
	}
	return sig, nil
}

// ListSignatairs 签字人登记列表
func (s *BankService) ListSignatairs(ctx context.Context) ([]entity.Signatair, error) {
	return s.repo.ListSignatairs(ctx)
}

// AddSignatairUser 添加签字人
func (s *BankService) AddSignatairUser(ctx context.Context, signatairID, userID string) (*entity.SignatairUser, error) {
	if _, err := s.repo.GetSignatair(ctx, signatairID); err != nil {
		return nil, fmt.Errorf("find signatair: %w", err)
	}
	su := &entity.SignatairUser{
		ID:          generateID(),
		SignatairID: signatairID,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.AddSignatairUser(ctx, su); err != nil {
		return nil, fmt.Errorf("add signatair user: %w", err)
	}
	return su, nil
}

// RemoveSignatairUser 移除签字人
func (s *BankService) RemoveSignatairUser(ctx context.Context, id string) error {
	return s.repo.RemoveSignatairUser(ctx, id)
}
