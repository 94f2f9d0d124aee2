package service

import (
	"github.com/Krestdev/Creapp-sub005/internal/config"
	"github.com/Krestdev/Creapp-sub005/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Services 服务集合
type Services struct {
	Auth      *AuthService
	User      *UserService
	Besoin    *BesoinService
	Quotation *QuotationService
	Payment   *PaymentService
	Bank      *BankService
	Export    *ExportService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, rdb, cfg),
		User:      NewUserService(repos.User),
		Besoin:    NewBesoinService(repos.Besoin, repos.Category, repos.User, logger),
		Quotation: NewQuotationService(repos.Quotation, repos.Besoin, logger),
		Payment:   NewPaymentService(repos.Payment, repos.Bank, logger),
		Bank:      NewBankService(repos.Bank),
		Export:    NewExportService(repos.Besoin, repos.Payment),
	}
}

func generateID() string {
	return uuid.New().String()[:32]
}
