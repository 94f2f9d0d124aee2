package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Krestdev/Creapp-sub005/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ExportService xlsx 导出服务 — besoin register and payment journal.
type ExportService struct {
	besoinRepo  *repository.BesoinRepository
	paymentRepo *repository.PaymentRepository
}

// NewExportService 创建导出服务
func NewExportService(besoinRepo *repository.BesoinRepository, paymentRepo *repository.PaymentRepository) *ExportService {
	return &ExportService{
		besoinRepo:  besoinRepo,
		paymentRepo: paymentRepo,
	}
}

var besoinExportHeaders = []string{
	"Libellé", "Quantité", "Unité", "Demandeur", "Projet", "État", "Échéance", "Créé le",
}

// ExportBesoins 导出需求台账
func (s *ExportService) ExportBesoins(ctx context.Context) (*excelize.File, string, error) {
	besoins, err := s.besoinRepo.FindAllWithReviews(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load besoins: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Besoins"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range besoinExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, b := range besoins {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), b.Label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), b.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), b.Unit)
		if b.Owner != nil {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), b.Owner.Name)
		}
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), b.ProjectRef)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), b.State)
		if b.DueDate != nil {
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), b.DueDate.Format("2006-01-02"))
		}
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), b.CreatedAt.Format("2006-01-02"))
	}

	colWidths := []float64{30, 10, 8, 20, 16, 12, 12, 12}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("besoins_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}

var paymentExportHeaders = []string{
	"Code", "Libellé", "Bénéficiaire", "Montant", "Devise", "Statut", "Signatures", "Payé le", "Créé le",
}

// ExportPayments 导出付款流水
func (s *ExportService) ExportPayments(ctx context.Context, params repository.PaymentListParams) (*excelize.File, string, error) {
	params.Page = 1
	params.Size = 10000
	payments, _, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, "", fmt.Errorf("load payments: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Paiements"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range paymentExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, p := range payments {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.Code)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Label)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Beneficiary)
		amount, _ := p.Amount.Float64()
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), amount)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.Currency)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), p.Status)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), len(p.Signatures))
		if p.PaidAt != nil {
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), p.PaidAt.Format("2006-01-02"))
		}
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), p.CreatedAt.Format("2006-01-02"))
	}

	colWidths := []float64{18, 30, 20, 14, 8, 14, 10, 12, 12}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("paiements_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}
