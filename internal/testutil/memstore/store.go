// Package memstore in-memory implementations of the storage repositories.
// Transactions are serialized and rolled back by restoring a snapshot.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

type state struct {
	nextID          int64
	categories      map[int64]domain.RoomCategory
	rooms           map[int64]domain.Room
	bookings        map[int64]domain.Booking
	stays           map[int64]domain.StayDetail
	guests          map[int64]domain.GuestProfile
	bookingGuests   []domain.BookingGuest
	payments        map[int64]domain.PaymentTransaction
	assignments     map[int64]domain.RoomAssignment
	charges         map[int64][]domain.Charge
	invoices        map[int64]domain.Invoice
	invoicePayments []domain.InvoicePayment
	sequences       map[string]int64
}

func newState() state {
	return state{
		categories:  make(map[int64]domain.RoomCategory),
		rooms:       make(map[int64]domain.Room),
		bookings:    make(map[int64]domain.Booking),
		stays:       make(map[int64]domain.StayDetail),
		guests:      make(map[int64]domain.GuestProfile),
		payments:    make(map[int64]domain.PaymentTransaction),
		assignments: make(map[int64]domain.RoomAssignment),
		charges:     make(map[int64][]domain.Charge),
		invoices:    make(map[int64]domain.Invoice),
		sequences:   make(map[string]int64),
	}
}

func (s state) clone() state {
	c := state{
		nextID:          s.nextID,
		categories:      copyMap(s.categories),
		rooms:           copyMap(s.rooms),
		bookings:        copyMap(s.bookings),
		stays:           copyMap(s.stays),
		guests:          copyMap(s.guests),
		bookingGuests:   append([]domain.BookingGuest(nil), s.bookingGuests...),
		payments:        copyMap(s.payments),
		assignments:     copyMap(s.assignments),
		charges:         make(map[int64][]domain.Charge, len(s.charges)),
		invoices:        make(map[int64]domain.Invoice, len(s.invoices)),
		invoicePayments: append([]domain.InvoicePayment(nil), s.invoicePayments...),
		sequences:       copyMap(s.sequences),
	}
	for k, v := range s.charges {
		c.charges[k] = append([]domain.Charge(nil), v...)
	}
	for k, v := range s.invoices {
		v.Items = append([]domain.InvoiceLineItem(nil), v.Items...)
		c.invoices[k] = v
	}
	return c
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Store shared state behind all repositories
type Store struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	data  state
	fails map[string]error
}

// New creates an empty store
func New() *Store {
	return &Store{
		data:  newState(),
		fails: make(map[string]error),
	}
}

// FailOn makes every call of the named repository method return err,
// e.g. FailOn("bookings.Update", errors.New("boom"))
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fails[method] = err
}

// check must be called with mu held
func (s *Store) check(method string) error {
	return s.fails[method]
}

func (s *Store) id() int64 {
	s.data.nextID++
	return s.data.nextID
}

// TxManager serializes transactions and restores the snapshot on error
type TxManager struct {
	store *Store
}

// TxManager transaction manager over the store
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

// Do runs fn in a transaction
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	m.store.mu.Lock()
	snapshot := m.store.data.clone()
	m.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.store.mu.Lock()
		m.store.data = snapshot
		m.store.mu.Unlock()
		return err
	}
	return nil
}

// DoSerializable same as Do
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// DoReadOnly same as Do
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// AddCategory seeds a category and returns it with its id
func (s *Store) AddCategory(c domain.RoomCategory) domain.RoomCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	s.data.categories[c.ID] = c
	return c
}

// AddRoom seeds a room and returns it with its id
func (s *Store) AddRoom(r domain.Room) domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id()
	if r.Status == "" {
		r.Status = domain.RoomAvailable
	}
	s.data.rooms[r.ID] = r
	return r
}

// AddCharge seeds a billable charge of a booking
func (s *Store) AddCharge(bookingID int64, c domain.Charge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	c.SourceID = &id
	s.data.charges[bookingID] = append(s.data.charges[bookingID], c)
}

// SetRoomStatus changes the status of a seeded room
func (s *Store) SetRoomStatus(roomID int64, status domain.RoomStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.data.rooms[roomID]
	r.Status = status
	s.data.rooms[roomID] = r
}

// Booking current state of a booking
func (s *Store) Booking(id int64) (domain.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data.bookings[id]
	return b, ok
}

// Stay current stay of a booking
func (s *Store) Stay(bookingID int64) (domain.StayDetail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.data.stays[bookingID]
	return st, ok
}

// Room current state of a room
func (s *Store) Room(id int64) (domain.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.rooms[id]
	return r, ok
}

// Payment current state of a payment transaction
func (s *Store) Payment(id int64) (domain.PaymentTransaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.payments[id]
	return p, ok
}

// GuestProfiles all guest profiles
func (s *Store) GuestProfiles() []domain.GuestProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.GuestProfile, 0, len(s.data.guests))
	for _, g := range s.data.guests {
		result = append(result, g)
	}
	return result
}

// BookingCount number of stored bookings
func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.bookings)
}

// InvoicePayments payments recorded against an invoice
func (s *Store) InvoicePayments(invoiceID int64) []domain.InvoicePayment {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.InvoicePayment, 0)
	for _, p := range s.data.invoicePayments {
		if p.InvoiceID == invoiceID {
			result = append(result, p)
		}
	}
	return result
}

func isActive(status domain.BookingStatus) bool {
	b := domain.Booking{Status: status}
	return b.IsActive()
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// AddBooking seeds a booking with its stay and returns the booking with its id
func (s *Store) AddBooking(b domain.Booking, stay domain.StayDetail) domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.id()
	if b.Reference == "" {
		b.Reference = fmt.Sprintf("%s-TEST-%06d", domain.ReferencePrefix, b.ID)
	}
	if b.Status == "" {
		b.Status = domain.StatusPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = domain.PaymentPending
	}
	stay.BookingID = b.ID
	s.data.bookings[b.ID] = b
	s.data.stays[b.ID] = stay
	return b
}

// AddPayment seeds a payment transaction and returns it with its id
func (s *Store) AddPayment(tx domain.PaymentTransaction) domain.PaymentTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx.ID = s.id()
	if tx.Status == "" {
		tx.Status = domain.TransactionPending
	}
	s.data.payments[tx.ID] = tx
	return tx
}

// AddAssignment seeds an audit row
func (s *Store) AddAssignment(a domain.RoomAssignment) domain.RoomAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.id()
	s.data.assignments[a.ID] = a
	return a
}

// AssignmentsOf audit rows of a booking ordered by id
func (s *Store) AssignmentsOf(bookingID int64) []domain.RoomAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.RoomAssignment, 0)
	for _, a := range s.data.assignments {
		if a.BookingID == bookingID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Invoice current state of an invoice
func (s *Store) Invoice(id int64) (domain.Invoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.data.invoices[id]
	return inv, ok
}

// AddInvoice seeds an invoice and returns it with its id
func (s *Store) AddInvoice(inv domain.Invoice) domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.ID = s.id()
	if inv.Status == "" {
		inv.Status = domain.InvoiceIssued
		inv.BalanceDue = inv.Total - inv.AmountPaid
	}
	s.data.invoices[inv.ID] = inv
	return inv
}
