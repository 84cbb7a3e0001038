package memstore

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	invoiceRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/invoice"
)

// ChargeRepository in-memory charge sources
type ChargeRepository struct {
	store *Store
}

// Charges charge repository over the store
func (s *Store) Charges() *ChargeRepository {
	return &ChargeRepository{store: s}
}

func (r *ChargeRepository) ListByBooking(_ context.Context, bookingID int64) ([]domain.Charge, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("charges.ListByBooking"); err != nil {
		return nil, err
	}

	return append([]domain.Charge{}, s.data.charges[bookingID]...), nil
}

// InvoiceRepository in-memory invoice repository
type InvoiceRepository struct {
	store *Store
}

// Invoices invoice repository over the store
func (s *Store) Invoices() *InvoiceRepository {
	return &InvoiceRepository{store: s}
}

func (r *InvoiceRepository) NextNumber(_ context.Context, period string) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("invoices.NextNumber"); err != nil {
		return 0, err
	}

	s.data.sequences[period]++
	return s.data.sequences[period], nil
}

func (r *InvoiceRepository) Create(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("invoices.Create"); err != nil {
		return nil, err
	}

	for _, existing := range s.data.invoices {
		if existing.BookingID == inv.BookingID {
			return nil, invoiceRepo.ErrInvoiceExists
		}
	}

	inv.ID = s.id()
	inv.UpdatedAt = inv.IssuedAt
	for i := range inv.Items {
		inv.Items[i].ID = s.id()
		inv.Items[i].InvoiceID = inv.ID
	}

	stored := *inv
	stored.Items = append([]domain.InvoiceLineItem(nil), inv.Items...)
	s.data.invoices[inv.ID] = stored
	return inv, nil
}

func (r *InvoiceRepository) GetByID(_ context.Context, id int64) (*domain.Invoice, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("invoices.GetByID"); err != nil {
		return nil, err
	}

	inv, ok := s.data.invoices[id]
	if !ok {
		return nil, invoiceRepo.ErrInvoiceNotFound
	}
	inv.Items = append([]domain.InvoiceLineItem{}, inv.Items...)
	return &inv, nil
}

func (r *InvoiceRepository) GetByBookingID(_ context.Context, bookingID int64) (*domain.Invoice, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("invoices.GetByBookingID"); err != nil {
		return nil, err
	}

	for _, inv := range s.data.invoices {
		if inv.BookingID == bookingID {
			inv.Items = append([]domain.InvoiceLineItem{}, inv.Items...)
			return &inv, nil
		}
	}
	return nil, invoiceRepo.ErrInvoiceNotFound
}

// LockByID returns the invoice without line items
func (r *InvoiceRepository) LockByID(_ context.Context, id int64) (*domain.Invoice, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("invoices.LockByID"); err != nil {
		return nil, err
	}

	inv, ok := s.data.invoices[id]
	if !ok {
		return nil, invoiceRepo.ErrInvoiceNotFound
	}
	inv.Items = nil
	return &inv, nil
}

func (r *InvoiceRepository) ExistsForBooking(_ context.Context, bookingID int64) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("invoices.ExistsForBooking"); err != nil {
		return false, err
	}

	for _, inv := range s.data.invoices {
		if inv.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *InvoiceRepository) UpdatePayment(_ context.Context, inv *domain.Invoice) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("invoices.UpdatePayment"); err != nil {
		return err
	}

	stored, ok := s.data.invoices[inv.ID]
	if !ok {
		return invoiceRepo.ErrInvoiceNotFound
	}
	stored.AmountPaid = inv.AmountPaid
	stored.BalanceDue = inv.BalanceDue
	stored.Status = inv.Status
	stored.UpdatedAt = inv.UpdatedAt
	s.data.invoices[inv.ID] = stored
	return nil
}

func (r *InvoiceRepository) AddPayment(_ context.Context, p *domain.InvoicePayment) (*domain.InvoicePayment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("invoices.AddPayment"); err != nil {
		return nil, err
	}

	p.ID = s.id()
	s.data.invoicePayments = append(s.data.invoicePayments, *p)
	return p, nil
}
