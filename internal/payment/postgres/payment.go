package postgres

import (
	"github.com/alx-travel/travelbook/internal/core/datamodel/payment"
	paymentpkg "github.com/alx-travel/travelbook/internal/payment"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) paymentpkg.Repository {
	return &PaymentRepository{
		db: db,
	}
}

func (r *PaymentRepository) Create(p *payment.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByBookingID(bookingID int64) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.Where("booking_id = ?", bookingID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateStatusIfPending is the mutual-exclusion guard for concurrent
// verifications: the WHERE clause on status makes the terminal
// transition happen exactly once, and rows-affected tells the caller
// whether it was the one that applied it.
func (r *PaymentRepository) UpdateStatusIfPending(id int64, status string, transactionID *string) (bool, error) {
	updates := map[string]interface{}{
		"status": status,
	}

	if transactionID != nil {
		updates["transaction_id"] = *transactionID
	}

	result := r.db.Model(&payment.Payment{}).
		Where("id = ? AND status = ?", id, payment.StatusPending).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
