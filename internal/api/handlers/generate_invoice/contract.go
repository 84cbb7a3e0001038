package generate_invoice

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	generateInvoice "github.com/m04kA/SMC-RoomBookingService/internal/usecase/generate_invoice"
)

type GenerateInvoiceUseCase interface {
	Execute(ctx context.Context, req *generateInvoice.Request) (*domain.Invoice, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
