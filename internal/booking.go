package models

import (
	"time"

	"github.com/google/uuid"
)

// FeeSchedule holds the fixed charges added to every booking. It comes from
// configuration, not from stored state.
type FeeSchedule struct {
	ServiceFeeCents int64
}

// Overlaps reports whether the inclusive ranges [aStart, aEnd] and
// [bStart, bEnd] intersect. A shared boundary day counts as a conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// HasConflict reports whether the candidate range collides with any booking in
// the list whose stored status still holds the car (PENDING or CONFIRMED).
// excludeID lets a booking being modified skip itself.
func HasConflict(existing []Booking, start, end time.Time, excludeID uuid.UUID) bool {
	for _, b := range existing {
		if b.ID == excludeID {
			continue
		}
		if b.Status != StatusPending && b.Status != StatusConfirmed {
			continue
		}
		if Overlaps(b.StartDate, b.EndDate, start, end) {
			return true
		}
	}
	return false
}

// RentalDays returns the number of chargeable days for an inclusive range.
// Both boundary days count, so a same-day rental charges one day and any
// partial trailing day charges in full.
func RentalDays(start, end time.Time) int64 {
	days := int64(end.Sub(start)/(24*time.Hour)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// ComputePrice returns the total charge in cents for renting at dailyRateCents
// over [start, end] plus the schedule's fixed service fee. Returns
// ErrInvalidRange when end precedes start.
func ComputePrice(dailyRateCents int64, start, end time.Time, fees FeeSchedule) (int64, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return dailyRateCents*RentalDays(start, end) + fees.ServiceFeeCents, nil
}

// DeriveStatus maps a booking's stored status and date range to its display
// status as of now. Cancellation is terminal and wins over the dates.
func DeriveStatus(stored BookingStatus, start, end, now time.Time) DisplayStatus {
	switch {
	case stored == StatusCancelled:
		return DisplayCancelled
	case now.Before(start):
		return DisplayUpcoming
	case now.After(end):
		return DisplayCompleted
	default:
		return DisplayActive
	}
}

// ToResponse attaches the display status for now to a stored booking.
func (b Booking) ToResponse(now time.Time) BookingResponse {
	return BookingResponse{
		Booking:       b,
		DisplayStatus: DeriveStatus(b.Status, b.StartDate, b.EndDate, now),
	}
}
