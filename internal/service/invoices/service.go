package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	invoiceRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/invoice"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/invoices/models"
)

// Service invoice reads
type Service struct {
	invoiceRepo InvoiceRepository
	logger      Logger
}

// NewService creates an invoices service
func NewService(invoiceRepo InvoiceRepository, logger Logger) *Service {
	return &Service{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// GetByID invoice with line items
func (s *Service) GetByID(ctx context.Context, id int64) (*models.InvoiceResponse, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	return s.respond("GetByID", id, inv, err)
}

// GetByBooking invoice of a booking with line items
func (s *Service) GetByBooking(ctx context.Context, bookingID int64) (*models.InvoiceResponse, error) {
	inv, err := s.invoiceRepo.GetByBookingID(ctx, bookingID)
	return s.respond("GetByBooking", bookingID, inv, err)
}

func (s *Service) respond(op string, id int64, inv *domain.Invoice, err error) (*models.InvoiceResponse, error) {
	if err != nil {
		if errors.Is(err, invoiceRepo.ErrInvoiceNotFound) {
			s.logger.Warn("%s: invoice for id=%d not found", op, id)
			return nil, ErrInvoiceNotFound
		}
		s.logger.Error("%s: repository error for id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return models.FromDomainInvoice(inv), nil
}
