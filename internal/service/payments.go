package service

import (
	"time"

	"github.com/yourorg/flatdash/internal/domain"
)

// ValidPaymentStatus reports whether status is one of the recognized
// payment statuses. Unrecognized values must be rejected, not stored.
func ValidPaymentStatus(status string) bool {
	switch status {
	case domain.PaymentPaid, domain.PaymentPending, domain.PaymentOverdue:
		return true
	}
	return false
}

// ResolvePaymentDate returns the payment date to store for a status change.
// Marking paid stamps the supplied instant, or now when none was supplied;
// any other status clears the date back to null.
func ResolvePaymentDate(status string, supplied *time.Time, now time.Time) *time.Time {
	if status != domain.PaymentPaid {
		return nil
	}
	if supplied != nil {
		return supplied
	}
	return &now
}
