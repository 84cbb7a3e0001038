package middleware

import (
	"context"
	"net/http"
	"strings"
)

// StaffIDHeader identifies the staff member acting on a request.
// Authentication happens upstream; the value is only recorded.
const StaffIDHeader = "X-Staff-ID"

const maxStaffIDLength = 100

type staffIDKey struct{}

// StaffID stores the X-Staff-ID header in the request context when present
func StaffID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staffID := strings.TrimSpace(r.Header.Get(StaffIDHeader))
		if staffID == "" || len(staffID) > maxStaffIDLength {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithStaffID(r.Context(), staffID)))
	})
}

// WithStaffID returns ctx carrying staffID
func WithStaffID(ctx context.Context, staffID string) context.Context {
	return context.WithValue(ctx, staffIDKey{}, staffID)
}

// GetStaffID staff member of the request
func GetStaffID(ctx context.Context) (string, bool) {
	staffID, ok := ctx.Value(staffIDKey{}).(string)
	return staffID, ok && staffID != ""
}

// StaffIDPtr same as GetStaffID, nil when absent
func StaffIDPtr(ctx context.Context) *string {
	staffID, ok := GetStaffID(ctx)
	if !ok {
		return nil
	}
	return &staffID
}
