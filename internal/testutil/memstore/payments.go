package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/payment"
)

// PaymentRepository in-memory payment transaction repository
type PaymentRepository struct {
	store *Store
}

// Payments payment repository over the store
func (s *Store) Payments() *PaymentRepository {
	return &PaymentRepository{store: s}
}

func (r *PaymentRepository) Create(_ context.Context, tx *domain.PaymentTransaction) (*domain.PaymentTransaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("payments.Create"); err != nil {
		return nil, err
	}

	tx.ID = s.id()
	s.data.payments[tx.ID] = *tx
	return tx, nil
}

func (r *PaymentRepository) LockByID(_ context.Context, id int64) (*domain.PaymentTransaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("payments.LockByID"); err != nil {
		return nil, err
	}

	tx, ok := s.data.payments[id]
	if !ok {
		return nil, paymentRepo.ErrTransactionNotFound
	}
	return &tx, nil
}

func (r *PaymentRepository) ListByBooking(_ context.Context, bookingID int64) ([]*domain.PaymentTransaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("payments.ListByBooking"); err != nil {
		return nil, err
	}

	result := make([]*domain.PaymentTransaction, 0)
	for _, tx := range s.data.payments {
		if tx.BookingID == bookingID {
			tx := tx
			result = append(result, &tx)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *PaymentRepository) MarkCompleted(_ context.Context, id int64, at time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("payments.MarkCompleted"); err != nil {
		return err
	}

	tx, ok := s.data.payments[id]
	if !ok {
		return paymentRepo.ErrTransactionNotFound
	}
	tx.Status = domain.TransactionCompleted
	tx.CompletedAt = &at
	s.data.payments[id] = tx
	return nil
}

func (r *PaymentRepository) RefundCompleted(_ context.Context, bookingID int64, at time.Time) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("payments.RefundCompleted"); err != nil {
		return 0, err
	}

	count := 0
	for id, tx := range s.data.payments {
		if tx.BookingID != bookingID || tx.Status != domain.TransactionCompleted {
			continue
		}
		tx.Status = domain.TransactionRefunded
		tx.RefundedAt = &at
		s.data.payments[id] = tx
		count++
	}
	return count, nil
}
