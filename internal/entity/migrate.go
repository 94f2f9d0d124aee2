package entity

import "gorm.io/gorm"

// AutoMigrate creates or updates every table of the domain.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Department{},
		&DepartmentMember{},
		&Category{},
		&CategoryValidator{},
		&Besoin{},
		&BesoinReview{},
		&CommandRequest{},
		&Provider{},
		&Quotation{},
		&QuotationElement{},
		&Bank{},
		&PayMethod{},
		&Signatair{},
		&SignatairUser{},
		&PaymentRequest{},
		&PaymentSignature{},
	)
}
