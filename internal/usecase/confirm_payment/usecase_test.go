package confirm_payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-RoomBookingService/internal/testutil/recorder"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*memstore.Store, *recorder.Events, *UseCase) {
	t.Helper()
	store := memstore.New()
	events := recorder.NewEvents()
	uc := NewUseCase(store.Bookings(), store.Payments(), store.TxManager(), events, logger.NewNop()).
		WithTimeProvider(fixedTime{now})
	return store, events, uc
}

func TestExecute_ConfirmsPendingBooking(t *testing.T) {
	store, events, uc := setup(t)
	booking := store.AddBooking(domain.Booking{TotalAmount: 12300}, domain.StayDetail{})
	tx := store.AddPayment(domain.PaymentTransaction{BookingID: booking.ID, Amount: 12300, Method: "card"})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, TransactionID: tx.ID})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, domain.PaymentPaid, resp.PaymentStatus)
	assert.Equal(t, now, resp.ConfirmedAt)

	stored, _ := store.Booking(booking.ID)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
	require.NotNil(t, stored.ConfirmedAt)

	captured, _ := store.Payment(tx.ID)
	assert.Equal(t, domain.TransactionCompleted, captured.Status)
	require.NotNil(t, captured.CompletedAt)
	assert.Equal(t, now, *captured.CompletedAt)

	assert.Equal(t, []domain.EventType{domain.EventBookingConfirmed}, events.Types())
}

func TestExecute_KeepsCheckedInStatus(t *testing.T) {
	store, _, uc := setup(t)
	confirmedAt := now.Add(-48 * time.Hour)
	booking := store.AddBooking(domain.Booking{Status: domain.StatusCheckedIn, ConfirmedAt: &confirmedAt}, domain.StayDetail{})
	tx := store.AddPayment(domain.PaymentTransaction{BookingID: booking.ID})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, TransactionID: tx.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCheckedIn, resp.Status)
	assert.Equal(t, confirmedAt, resp.ConfirmedAt)
}

func TestExecute_Errors(t *testing.T) {
	store, events, uc := setup(t)

	pending := store.AddBooking(domain.Booking{}, domain.StayDetail{})
	other := store.AddBooking(domain.Booking{}, domain.StayDetail{})
	cancelled := store.AddBooking(domain.Booking{Status: domain.StatusCancelled}, domain.StayDetail{})

	completed := store.AddPayment(domain.PaymentTransaction{BookingID: pending.ID, Status: domain.TransactionCompleted})
	refunded := store.AddPayment(domain.PaymentTransaction{BookingID: pending.ID, Status: domain.TransactionRefunded})
	foreign := store.AddPayment(domain.PaymentTransaction{BookingID: other.ID})
	ofCancelled := store.AddPayment(domain.PaymentTransaction{BookingID: cancelled.ID})

	tests := []struct {
		name     string
		req      Request
		want     error
		category error
	}{
		{"invalid ids", Request{BookingID: 0, TransactionID: 1}, ErrInvalidInput, domain.ErrValidation},
		{"unknown transaction", Request{BookingID: pending.ID, TransactionID: 9999}, ErrTransactionNotFound, domain.ErrNotFound},
		{"transaction of another booking", Request{BookingID: pending.ID, TransactionID: foreign.ID}, ErrTransactionNotFound, domain.ErrNotFound},
		{"already completed", Request{BookingID: pending.ID, TransactionID: completed.ID}, ErrAlreadyCompleted, domain.ErrConflict},
		{"already refunded", Request{BookingID: pending.ID, TransactionID: refunded.ID}, ErrAlreadyCompleted, domain.ErrConflict},
		{"cancelled booking", Request{BookingID: cancelled.ID, TransactionID: ofCancelled.ID}, ErrBookingNotPayable, domain.ErrState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := uc.Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.category)
		})
	}

	tx, _ := store.Payment(ofCancelled.ID)
	assert.Equal(t, domain.TransactionPending, tx.Status)
	assert.Empty(t, events.All())
}

func TestExecute_NoDoubleCharge(t *testing.T) {
	store, events, uc := setup(t)
	booking := store.AddBooking(domain.Booking{}, domain.StayDetail{})
	tx := store.AddPayment(domain.PaymentTransaction{BookingID: booking.ID})

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, TransactionID: tx.ID})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{BookingID: booking.ID, TransactionID: tx.ID})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Len(t, events.All(), 1)
}

func TestExecute_RollsBackOnFailure(t *testing.T) {
	store, _, uc := setup(t)
	booking := store.AddBooking(domain.Booking{}, domain.StayDetail{})
	tx := store.AddPayment(domain.PaymentTransaction{BookingID: booking.ID})
	store.FailOn("bookings.Update", errors.New("disk full"))

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID, TransactionID: tx.ID})
	assert.ErrorIs(t, err, ErrInternal)

	stored, _ := store.Payment(tx.ID)
	assert.Equal(t, domain.TransactionPending, stored.Status)
}
