package invoices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

func TestGet(t *testing.T) {
	store := memstore.New()
	svc := NewService(store.Invoices(), logger.NewNop())

	inv := store.AddInvoice(domain.Invoice{
		BookingID:   42,
		Number:      "INV-202506-0007",
		Subtotal:    20000,
		TaxRate:     1800,
		Tax:         3600,
		ServiceRate: 500,
		Total:       24600,
		IssuedAt:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Items: []domain.InvoiceLineItem{
			{Source: domain.SourceRoom, Description: "Room", Quantity: 2, UnitPrice: 10000, Amount: 20000},
		},
	})

	byID, err := svc.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-202506-0007", byID.Number)
	assert.Equal(t, "issued", byID.Status)
	assert.Equal(t, 18.0, byID.TaxRate)
	assert.Equal(t, 5.0, byID.ServiceChargeRate)
	assert.Equal(t, int64(24600), byID.BalanceDue)
	require.Len(t, byID.Items, 1)
	assert.Equal(t, "room", byID.Items[0].Source)

	byBooking, err := svc.GetByBooking(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, byID.ID, byBooking.ID)
}

func TestGet_Errors(t *testing.T) {
	store := memstore.New()
	svc := NewService(store.Invoices(), logger.NewNop())

	_, err := svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByBooking(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	store.FailOn("invoices.GetByID", errors.New("connection refused"))
	_, err = svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}
