package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Krestdev/Creapp-sub005/internal/entity"
	"github.com/Krestdev/Creapp-sub005/internal/repository"
	"github.com/Krestdev/Creapp-sub005/internal/workflow"
	"go.uber.org/zap"
)

// BesoinService 采购需求服务 — CRUD plus the validation chain.
type BesoinService struct {
	besoinRepo   *repository.BesoinRepository
	categoryRepo *repository.CategoryRepository
	userRepo     *repository.UserRepository
	logger       *zap.Logger
}

// NewBesoinService 创建需求服务
func NewBesoinService(besoinRepo *repository.BesoinRepository, categoryRepo *repository.CategoryRepository, userRepo *repository.UserRepository, logger *zap.Logger) *BesoinService {
	return &BesoinService{
		besoinRepo:   besoinRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// CreateBesoinRequest 创建需求请求
type CreateBesoinRequest struct {
	Label      string     `json:"label" binding:"required"`
	Quantity   float64    `json:"quantity" binding:"required,gt=0"`
	Unit       string     `json:"unit"`
	CategoryID string     `json:"category_id" binding:"required"`
	ProjectRef string     `json:"project_ref"`
	DueDate    *time.Time `json:"due_date"`
}

// Create 创建需求, 初始状态 pending
func (s *BesoinService) Create(ctx context.Context, userID string, req *CreateBesoinRequest) (*entity.Besoin, error) {
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}

	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}

	now := time.Now()
	b := &entity.Besoin{
		ID:         generateID(),
		Label:      req.Label,
		Quantity:   req.Quantity,
		Unit:       unit,
		UserID:     userID,
		CategoryID: req.CategoryID,
		ProjectRef: req.ProjectRef,
		DueDate:    req.DueDate,
		State:      entity.BesoinStatePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.besoinRepo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create besoin: %w", err)
	}
	return b, nil
}

// UpdateBesoinRequest 更新需求请求 — only while still pending.
type UpdateBesoinRequest struct {
	Label      *string    `json:"label"`
	Quantity   *float64   `json:"quantity"`
	Unit       *string    `json:"unit"`
	ProjectRef *string    `json:"project_ref"`
	DueDate    *time.Time `json:"due_date"`
}

// Update 更新需求
func (s *BesoinService) Update(ctx context.Context, id string, req *UpdateBesoinRequest) (*entity.Besoin, error) {
	b, err := s.besoinRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.IsTerminal() {
		return nil, workflow.NewPreconditionError("update besoin", "besoin %s already %s", b.ID, b.State)
	}

	if req.Label != nil {
		b.Label = *req.Label
	}
	if req.Quantity != nil {
		b.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		b.Unit = *req.Unit
	}
	if req.ProjectRef != nil {
		b.ProjectRef = *req.ProjectRef
	}
	if req.DueDate != nil {
		b.DueDate = req.DueDate
	}
	b.UpdatedAt = time.Now()

	if err := s.besoinRepo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update besoin: %w", err)
	}
	return b, nil
}

// Get 需求详情
func (s *BesoinService) Get(ctx context.Context, id string) (*entity.Besoin, error) {
	return s.besoinRepo.FindByID(ctx, id)
}

// List 需求列表
func (s *BesoinService) List(ctx context.Context, params repository.BesoinListParams) (map[string]interface{}, error) {
	besoins, total, err := s.besoinRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"besoins": besoins,
		"total":   total,
	}, nil
}

// PendingFor 待userID处理的需求队列
func (s *BesoinService) PendingFor(ctx context.Context, userID string) ([]entity.Besoin, error) {
	besoins, departments, err := s.loadSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	return workflow.PendingFor(besoins, departments, userID), nil
}

// ProcessedBy userID已处理的需求
func (s *BesoinService) ProcessedBy(ctx context.Context, userID string) ([]entity.Besoin, error) {
	besoins, departments, err := s.loadSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	return workflow.ProcessedBy(besoins, departments, userID), nil
}

func (s *BesoinService) loadSnapshots(ctx context.Context) ([]entity.Besoin, []entity.Department, error) {
	besoins, err := s.besoinRepo.FindAllWithReviews(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load besoins: %w", err)
	}
	departments, err := s.userRepo.ListDepartments(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load departments: %w", err)
	}
	return besoins, departments, nil
}

// DecisionRequest 审批请求
type DecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	Comment  string `json:"comment"`
}

// SubmitDecision records actorID's decision on a besoin and moves its state.
//
// Rejection is immediate and terminal. An approval is one review among the
// chain's; the besoin completes to validated only when the actor is a final
// validator and every validator-capable member has already reviewed it, or —
// when no final validator exists at all — when the category chain is fully
// approved. The final sign-off itself only opens once the chain is done: a
// final validator without a regular validation turn is refused until every
// validator-capable member has reviewed.
func (s *BesoinService) SubmitDecision(ctx context.Context, besoinID, actorID string, req *DecisionRequest) (*entity.Besoin, error) {
	b, err := s.besoinRepo.FindByID(ctx, besoinID)
	if err != nil {
		return nil, err
	}
	if b.IsTerminal() {
		return nil, workflow.NewPreconditionError("submit decision", "besoin %s already %s", b.ID, b.State)
	}

	departments, err := s.userRepo.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}
	category, err := s.categoryRepo.FindByID(ctx, b.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}

	if !s.mayDecide(actorID, departments, category.Validators) {
		return nil, workflow.NewPreconditionError("submit decision", "user %s is not a validator for this besoin", actorID)
	}
	if workflow.HasReviewed(*b, actorID) {
		return nil, workflow.NewPreconditionError("submit decision", "user %s already reviewed besoin %s", actorID, b.ID)
	}
	if workflow.IsFinalValidator(departments, actorID) &&
		!s.hasRegularTurn(actorID, departments, category.Validators) &&
		!workflow.AllValidatorsReviewed(*b, departments) {
		return nil, workflow.NewPreconditionError("submit decision", "besoin %s still awaits the validation chain", b.ID)
	}

	review := &entity.BesoinReview{
		ID:          generateID(),
		BesoinID:    b.ID,
		ValidatorID: actorID,
		Decision:    req.Decision,
		Comment:     req.Comment,
		DecidedAt:   time.Now(),
	}
	if err := s.besoinRepo.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	b.Reviews = append(b.Reviews, *review)

	if req.Decision == entity.DecisionRejected {
		b.State = entity.BesoinStateRejected
	} else if s.completesChain(b, actorID, departments, category.Validators) {
		b.State = entity.BesoinStateValidated
	}
	b.UpdatedAt = time.Now()

	if err := s.besoinRepo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update besoin: %w", err)
	}

	s.logger.Info("besoin decision recorded",
		zap.String("besoin_id", b.ID),
		zap.String("actor_id", actorID),
		zap.String("decision", req.Decision),
		zap.String("state", b.State))
	return b, nil
}

// mayDecide actor must hold a validation role somewhere: validator-capable
// department member, final validator, or category chain member.
func (s *BesoinService) mayDecide(actorID string, departments []entity.Department, chain []entity.CategoryValidator) bool {
	return workflow.IsFinalValidator(departments, actorID) || s.hasRegularTurn(actorID, departments, chain)
}

// hasRegularTurn actor holds a regular validation turn, as a validator-capable
// department member or a category chain member.
func (s *BesoinService) hasRegularTurn(actorID string, departments []entity.Department, chain []entity.CategoryValidator) bool {
	for _, id := range workflow.ValidatorIDs(departments) {
		if id == actorID {
			return true
		}
	}
	for _, v := range chain {
		if v.UserID == actorID {
			return true
		}
	}
	return false
}

// completesChain decides whether this approval finishes the besoin. With a
// final validator somewhere in the org, only that validator closes, and only
// once every validator-capable member has reviewed. Without one, a fully
// approved category chain closes.
func (s *BesoinService) completesChain(b *entity.Besoin, actorID string, departments []entity.Department, chain []entity.CategoryValidator) bool {
	if workflow.IsFinalValidator(departments, actorID) {
		return workflow.AllValidatorsReviewed(*b, departments)
	}
	if workflow.AnyFinalValidator(departments) {
		return false
	}
	return workflow.CategoryChainApproved(*b, chain)
}

// --- Categories ---

// CreateCategoryRequest 创建类目请求
type CreateCategoryRequest struct {
	Label string `json:"label" binding:"required"`
}

// CreateCategory 创建类目
func (s *BesoinService) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*entity.Category, error) {
	now := time.Now()
	c := &entity.Category{
		ID:        generateID(),
		Label:     req.Label,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// ListCategories 类目列表（含验证链）
func (s *BesoinService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// AddChainValidatorRequest 向类目验证链添加成员
type AddChainValidatorRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Rank   int    `json:"rank"`
}

// AddChainValidator 添加链上验证人
func (s *BesoinService) AddChainValidator(ctx context.Context, categoryID string, req *AddChainValidatorRequest) (*entity.CategoryValidator, error) {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	v := &entity.CategoryValidator{
		ID:         generateID(),
		CategoryID: categoryID,
		UserID:     req.UserID,
		Rank:       req.Rank,
		CreatedAt:  time.Now(),
	}
	if err := s.categoryRepo.AddValidator(ctx, v); err != nil {
		return nil, fmt.Errorf("add validator: %w", err)
	}
	return v, nil
}

// RemoveChainValidator 移除链上验证人
func (s *BesoinService) RemoveChainValidator(ctx context.Context, id string) error {
	return s.categoryRepo.RemoveValidator(ctx, id)
}
