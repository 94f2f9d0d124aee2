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

// QuotationService 询价与报价服务 — grouping, preselection and selection
// submission on top of the pure reshaping functions.
type QuotationService struct {
	quotationRepo *repository.QuotationRepository
	besoinRepo    *repository.BesoinRepository
	logger        *zap.Logger
}

// NewQuotationService 创建报价服务
func NewQuotationService(quotationRepo *repository.QuotationRepository, besoinRepo *repository.BesoinRepository, logger *zap.Logger) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		besoinRepo:    besoinRepo,
		logger:        logger,
	}
}

// CreateCommandRequestRequest 创建询价单请求
type CreateCommandRequestRequest struct {
	Code      string   `json:"code" binding:"required"`
	Label     string   `json:"label" binding:"required"`
	BesoinIDs []string `json:"besoin_ids" binding:"required,min=1"`
}

// CreateCommandRequest groups validated besoins into one solicitation. Only
// validated, not-yet-grouped besoins are eligible.
func (s *QuotationService) CreateCommandRequest(ctx context.Context, userID string, req *CreateCommandRequestRequest) (*entity.CommandRequest, error) {
	now := time.Now()
	cr := &entity.CommandRequest{
		ID:        generateID(),
		Code:      req.Code,
		Label:     req.Label,
		Status:    entity.CommandRequestStatusOpen,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, besoinID := range req.BesoinIDs {
		b, err := s.besoinRepo.FindByID(ctx, besoinID)
		if err != nil {
			return nil, fmt.Errorf("find besoin: %w", err)
		}
		if b.State != entity.BesoinStateValidated {
			return nil, workflow.NewPreconditionError("create command request", "besoin %s is %s, not validated", b.ID, b.State)
		}
		if b.CommandRequestID != nil {
			return nil, workflow.NewPreconditionError("create command request", "besoin %s already grouped", b.ID)
		}
	}

	if err := s.quotationRepo.CreateCommandRequest(ctx, cr); err != nil {
		return nil, fmt.Errorf("create command request: %w", err)
	}
	for _, besoinID := range req.BesoinIDs {
		if err := s.quotationRepo.AttachBesoin(ctx, besoinID, cr.ID); err != nil {
			return nil, fmt.Errorf("attach besoin: %w", err)
		}
	}
	return s.quotationRepo.GetCommandRequest(ctx, cr.ID)
}

// GetCommandRequest 询价单详情
func (s *QuotationService) GetCommandRequest(ctx context.Context, id string) (*entity.CommandRequest, error) {
	return s.quotationRepo.GetCommandRequest(ctx, id)
}

// ListCommandRequests 询价单列表
func (s *QuotationService) ListCommandRequests(ctx context.Context) ([]entity.CommandRequest, error) {
	return s.quotationRepo.ListCommandRequests(ctx)
}

// QuotationElementInput one priced line of a submitted quotation.
type QuotationElementInput struct {
	BesoinID  string          `json:"besoin_id" binding:"required"`
	Label     string          `json:"label"`
	Quantity  float64         `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateQuotationRequest 录入报价请求
type CreateQuotationRequest struct {
	CommandRequestID string                  `json:"command_request_id" binding:"required"`
	ProviderID       string                  `json:"provider_id" binding:"required"`
	Currency         string                  `json:"currency"`
	ValidUntil       *time.Time              `json:"valid_until"`
	Notes            string                  `json:"notes"`
	Elements         []QuotationElementInput `json:"elements" binding:"required,min=1"`
}

// CreateQuotation records one provider's offer against a command request.
// Every element must answer a besoin of that command request.
func (s *QuotationService) CreateQuotation(ctx context.Context, req *CreateQuotationRequest) (*entity.Quotation, error) {
	cr, err := s.quotationRepo.GetCommandRequest(ctx, req.CommandRequestID)
	if err != nil {
		return nil, fmt.Errorf("find command request: %w", err)
	}
	if cr.Status != entity.CommandRequestStatusOpen {
		return nil, workflow.NewPreconditionError("create quotation", "command request %s is %s", cr.ID, cr.Status)
	}

	besoinIDs := make(map[string]struct{}, len(cr.Besoins))
	for _, b := range cr.Besoins {
		besoinIDs[b.ID] = struct{}{}
	}

	currency := req.Currency
	if currency == "" {
		currency = "XOF"
	}

	now := time.Now()
	q := &entity.Quotation{
		ID:               generateID(),
		CommandRequestID: cr.ID,
		ProviderID:       req.ProviderID,
		Currency:         currency,
		ValidUntil:       req.ValidUntil,
		Notes:            req.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, el := range req.Elements {
		if _, ok := besoinIDs[el.BesoinID]; !ok {
			return nil, workflow.NewPreconditionError("create quotation", "besoin %s not part of command request %s", el.BesoinID, cr.ID)
		}
		q.Elements = append(q.Elements, entity.QuotationElement{
			ID:          generateID(),
			QuotationID: q.ID,
			BesoinID:    el.BesoinID,
			Label:       el.Label,
			Quantity:    el.Quantity,
			UnitPrice:   el.UnitPrice,
			Status:      entity.ElementStatusDefault,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := s.quotationRepo.CreateQuotation(ctx, q); err != nil {
		return nil, fmt.Errorf("create quotation: %w", err)
	}
	return q, nil
}

// GroupView one command request joined with its quotations, plus the
// recovered per-besoin preselection.
type GroupView struct {
	workflow.QuotationGroup
	Selection map[string]string `json:"selection"`
}

// Groups returns the full grouped view for the selection screen. Selection
// conflicts found while recovering prior picks are logged and resolved
// first-match-wins, never surfaced as errors.
func (s *QuotationService) Groups(ctx context.Context) ([]GroupView, error) {
	groups, err := s.loadGroups(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		selection, conflicts := workflow.Preselect(g)
		for _, c := range conflicts {
			s.logger.Warn("conflicting selected elements for besoin",
				zap.String("command_request_id", g.CommandRequest.ID),
				zap.String("besoin_id", c.BesoinID),
				zap.String("kept_provider", c.KeptProvider),
				zap.String("dropped_provider", c.DroppedProvider))
		}
		views = append(views, GroupView{QuotationGroup: g, Selection: selection})
	}
	return views, nil
}

func (s *QuotationService) loadGroups(ctx context.Context) ([]workflow.QuotationGroup, error) {
	commandRequests, err := s.quotationRepo.ListCommandRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("load command requests: %w", err)
	}
	quotations, err := s.quotationRepo.ListQuotations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load quotations: %w", err)
	}
	providers, err := s.quotationRepo.ListProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load providers: %w", err)
	}
	return workflow.GroupByCommandRequest(commandRequests, quotations, providers), nil
}

// SubmitSelectionRequest 提交选择请求. Selection maps besoin id to the chosen
// provider id; besoins left out stay undecided.
type SubmitSelectionRequest struct {
	Selection map[string]string `json:"selection" binding:"required"`
}

// SubmitSelection persists the operator's provider picks for one command
// request. The submission payload is rebuilt from a fresh snapshot, rejected
// before persistence when empty, then the winning elements are flagged
// SELECTED in one transaction. Only besoins whose pick actually resolved are
// reset; a skipped pick leaves any previously persisted choice untouched.
func (s *QuotationService) SubmitSelection(ctx context.Context, commandRequestID string, req *SubmitSelectionRequest) ([]workflow.SubmissionItem, error) {
	groups, err := s.loadGroups(ctx)
	if err != nil {
		return nil, err
	}
	var group *workflow.QuotationGroup
	for i := range groups {
		if groups[i].CommandRequest.ID == commandRequestID {
			group = &groups[i]
			break
		}
	}
	if group == nil {
		return nil, repository.ErrNotFound
	}

	items, err := workflow.BuildSubmission(*group, req.Selection)
	if err != nil {
		return nil, err
	}

	var besoinIDs, elementIDs []string
	for _, item := range items {
		for _, el := range item.Elements {
			besoinIDs = append(besoinIDs, el.BesoinID)
			elementIDs = append(elementIDs, el.ElementIDs...)
		}
	}

	if err := s.quotationRepo.MarkElementsSelected(ctx, commandRequestID, besoinIDs, elementIDs); err != nil {
		return nil, fmt.Errorf("mark elements selected: %w", err)
	}

	s.logger.Info("selection submitted",
		zap.String("command_request_id", commandRequestID),
		zap.Int("quotations", len(items)),
		zap.Int("elements", len(elementIDs)))
	return items, nil
}

// --- Providers ---

// CreateProviderRequest 创建供应商请求
type CreateProviderRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateProvider 创建供应商
func (s *QuotationService) CreateProvider(ctx context.Context, req *CreateProviderRequest) (*entity.Provider, error) {
	now := time.Now()
	p := &entity.Provider{
		ID:        generateID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.quotationRepo.CreateProvider(ctx, p); err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return p, nil
}

// ListProviders 供应商列表
func (s *QuotationService) ListProviders(ctx context.Context) ([]entity.Provider, error) {
	return s.quotationRepo.ListProviders(ctx)
}
