package repository

import (
	"context"

	"github.com/Krestdev/Creapp-sub005/internal/entity"
	"gorm.io/gorm"
)

type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

// --- Command requests ---

func (r *QuotationRepository) CreateCommandRequest(ctx context.Context, cr *entity.CommandRequest) error {
	return r.db.WithContext(ctx).Create(cr).Error
}

func (r *QuotationRepository) GetCommandRequest(ctx context.Context, id string) (*entity.CommandRequest, error) {
	var cr entity.CommandRequest
	err := r.db.WithContext(ctx).
		Preload("Besoins").
		Preload("Quotations").
		Preload("Quotations.Elements").
		Preload("Quotations.Provider").
		Where("id = ?", id).
		First(&cr).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &cr, nil
}

// ListCommandRequests returns the command request snapshot with besoins,
// without quotations (those are fetched separately for grouping).
func (r *QuotationRepository) ListCommandRequests(ctx context.Context) ([]entity.CommandRequest, error) {
	var crs []entity.CommandRequest
	err := r.db.WithContext(ctx).
		Preload("Besoins").
		Order("created_at DESC").
		Find(&crs).Error
	return crs, err
}

func (r *QuotationRepository) UpdateCommandRequest(ctx context.Context, cr *entity.CommandRequest) error {
	return r.db.WithContext(ctx).Save(cr).Error
}

// AttachBesoin links a validated besoin to a command request.
func (r *QuotationRepository) AttachBesoin(ctx context.Context, besoinID, commandRequestID string) error {
	return r.db.WithContext(ctx).Model(&entity.Besoin{}).
		Where("id = ?", besoinID).
		Update("command_request_id", commandRequestID).Error
}

// --- Quotations ---

func (r *QuotationRepository) CreateQuotation(ctx context.Context, q *entity.Quotation) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *QuotationRepository) GetQuotation(ctx context.Context, id string) (*entity.Quotation, error) {
	var q entity.Quotation
	err := r.db.WithContext(ctx).
		Preload("Elements").
		Preload("Provider").
		Where("id = ?", id).
		First(&q).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &q, nil
}

func (r *QuotationRepository) ListQuotations(ctx context.Context) ([]entity.Quotation, error) {
	var quotations []entity.Quotation
	err := r.db.WithContext(ctx).
		Preload("Elements").
		Preload("Provider").
		Order("created_at").
		Find(&quotations).Error
	return quotations, err
}

// --- Providers ---

func (r *QuotationRepository) CreateProvider(ctx context.Context, p *entity.Provider) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *QuotationRepository) ListProviders(ctx context.Context) ([]entity.Provider, error) {
	var providers []entity.Provider
	err := r.db.WithContext(ctx).Order("name").Find(&providers).Error
	return providers, err
}

// --- Selection persistence ---

// MarkElementsSelected flips the chosen elements to SELECTED and resets every
// other element answering the same besoins inside the command request, in one
// transaction, so at most one provider stays selected per besoin.
func (r *QuotationRepository) MarkElementsSelected(ctx context.Context, commandRequestID string, besoinIDs, elementIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(besoinIDs) > 0 {
			if err := tx.Model(&entity.QuotationElement{}).
				Where("besoin_id IN ? AND quotation_id IN (?)",
					besoinIDs,
					tx.Model(&entity.Quotation{}).Select("id").Where("command_request_id = ?", commandRequestID)).
				Update("status", entity.ElementStatusDefault).Error; err != nil {
				return err
			}
		}
		if len(elementIDs) > 0 {
			if err := tx.Model(&entity.QuotationElement{}).
				Where("id IN ?", elementIDs).
				Update("status", entity.ElementStatusSelected).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
