package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Krestdev/Creapp-sub005/internal/entity"
	"github.com/Krestdev/Creapp-sub005/internal/repository"
	"github.com/Krestdev/Creapp-sub005/internal/workflow"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService 付款服务 — payment lifecycle and signatory authorization.
type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	bankRepo    *repository.BankRepository
	logger      *zap.Logger
}

// NewPaymentService 创建付款服务
func NewPaymentService(paymentRepo *repository.PaymentRepository, bankRepo *repository.BankRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		bankRepo:    bankRepo,
		logger:      logger,
	}
}

// CreatePaymentRequest 创建付款请求
type CreatePaymentRequest struct {
	Label       string          `json:"label" binding:"required"`
	Beneficiary string          `json:"beneficiary"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency"`
	BankID      *string         `json:"bank_id"`
	MethodID    *string         `json:"method_id"`
	Notes       string          `json:"notes"`
}

// Create 创建付款请求, 初始状态 unsigned
func (s *PaymentService) Create(ctx context.Context, userID string, req *CreatePaymentRequest) (*entity.PaymentRequest, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, workflow.NewPreconditionError("create payment", "amount must be positive")
	}

	code, err := s.paymentRepo.NextCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "XOF"
	}

	now := time.Now()
	p := &entity.PaymentRequest{
		ID:          generateID(),
		Code:        code,
		Label:       req.Label,
		Beneficiary: req.Beneficiary,
		Amount:      req.Amount,
		Currency:    currency,
		BankID:      req.BankID,
		MethodID:    req.MethodID,
		Status:      entity.PaymentStatusUnsigned,
		RequestedBy: userID,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return p, nil
}

// Get 付款详情
func (s *PaymentService) Get(ctx context.Context, id string) (*entity.PaymentRequest, error) {
	return s.paymentRepo.FindByID(ctx, id)
}

// List 付款列表
func (s *PaymentService) List(ctx context.Context, params repository.PaymentListParams) (map[string]interface{}, error) {
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"payments": payments,
		"total":    total,
	}, nil
}

// AssignRequest 绑定账户与支付方式
type AssignRequest struct {
	BankID   string `json:"bank_id" binding:"required"`
	MethodID string `json:"method_id" binding:"required"`
}

// Assign resolves the payment's bank and pay method. Allowed while the
// payment still awaits its first signature.
func (s *PaymentService) Assign(ctx context.Context, id string, req *AssignRequest) (*entity.PaymentRequest, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != entity.PaymentStatusUnsigned {
		return nil, workflow.NewPreconditionError("assign payment", "payment %s is %s", p.Code, p.Status)
	}
	if _, err := s.bankRepo.GetBank(ctx, req.BankID); err != nil {
		return nil, fmt.Errorf("find bank: %w", err)
	}

	p.BankID = &req.BankID
	p.MethodID = &req.MethodID
	p.UpdatedAt = time.Now()
	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return p, nil
}

// CanSign reports whether userID may sign the payment right now.
func (s *PaymentService) CanSign(ctx context.Context, paymentID, userID string) (bool, error) {
	p, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return false, err
	}
	if !p.AwaitsSignature() {
		return false, nil
	}
	ix, err := s.signerIndex(ctx)
	if err != nil {
		return false, err
	}
	return ix.CanSign(userID, p.BankID, p.MethodID), nil
}

// Sign records userID's signature and finalizes the payment when the roster
// mode is satisfied. The roster is re-checked against a fresh index at sign
// time — authorization is never cached across requests.
func (s *PaymentService) Sign(ctx context.Context, paymentID, userID string) (*entity.PaymentRequest, error) {
	p, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !p.AwaitsSignature() {
		return nil, workflow.NewPreconditionError("sign payment", "payment %s is %s", p.Code, p.Status)
	}

	ix, err := s.signerIndex(ctx)
	if err != nil {
		return nil, err
	}
	if !ix.CanSign(userID, p.BankID, p.MethodID) {
		return nil, workflow.NewPreconditionError("sign payment", "user %s is not authorized to sign payment %s", userID, p.Code)
	}
	for _, sig := range p.Signatures {
		if sig.UserID == userID {
			return nil, workflow.NewPreconditionError("sign payment", "user %s already signed payment %s", userID, p.Code)
		}
	}

	signature := &entity.PaymentSignature{
		ID:        generateID(),
		PaymentID: p.ID,
		UserID:    userID,
		SignedAt:  time.Now(),
	}
	if err := s.paymentRepo.CreateSignature(ctx, signature); err != nil {
		return nil, fmt.Errorf("create signature: %w", err)
	}
	p.Signatures = append(p.Signatures, *signature)

	signedBy := make([]string, 0, len(p.Signatures))
	for _, sig := range p.Signatures {
		signedBy = append(signedBy, sig.UserID)
	}
	if ix.IsComplete(*p.BankID, *p.MethodID, signedBy) {
		p.Status = entity.PaymentStatusSigned
	} else {
		p.Status = entity.PaymentStatusPartiallySigned
	}
	p.UpdatedAt = time.Now()

	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	s.logger.Info("payment signed",
		zap.String("payment_code", p.Code),
		zap.String("user_id", userID),
		zap.String("status", p.Status))
	return p, nil
}

// Actionable returns userID's signing worklist.
func (s *PaymentService) Actionable(ctx context.Context, userID string) ([]entity.PaymentRequest, error) {
	payments, err := s.paymentRepo.FindAwaitingSignature(ctx)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	ix, err := s.signerIndex(ctx)
	if err != nil {
		return nil, err
	}
	return ix.FilterActionable(payments, userID), nil
}

// MarkPaid 标记已付款 — only fully signed payments move to paid.
func (s *PaymentService) MarkPaid(ctx context.Context, id string) (*entity.PaymentRequest, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != entity.PaymentStatusSigned {
		return nil, workflow.NewPreconditionError("mark paid", "payment %s is %s, not signed", p.Code, p.Status)
	}
	now := time.Now()
	p.Status = entity.PaymentStatusPaid
	p.PaidAt = &now
	p.UpdatedAt = now
	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return p, nil
}

// Reject 拒绝付款 — terminal, allowed while not yet paid.
func (s *PaymentService) Reject(ctx context.Context, id string) (*entity.PaymentRequest, error) {
	p, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == entity.PaymentStatusPaid || p.Status == entity.PaymentStatusRejected || p.Status == entity.PaymentStatusCancelled {
		return nil, workflow.NewPreconditionError("reject payment", "payment %s is %s", p.Code, p.Status)
	}
	p.Status = entity.PaymentStatusRejected
	p.UpdatedAt = time.Now()
	if err := s.paymentRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return p, nil
}

func (s *PaymentService) signerIndex(ctx context.Context) (*workflow.SignerIndex, error) {
	signatairs, err := s.bankRepo.ListSignatairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load signatairs: %w", err)
	}
	return workflow.BuildSignerIndex(signatairs), nil
}
