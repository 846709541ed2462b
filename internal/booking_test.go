package models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	models "github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{
			name:   "candidate inside existing",
			aStart: day(2024, 6, 1), aEnd: day(2024, 6, 5),
			bStart: day(2024, 6, 3), bEnd: day(2024, 6, 4),
			expected: true,
		},
		{
			name:   "candidate straddles end",
			aStart: day(2024, 6, 1), aEnd: day(2024, 6, 5),
			bStart: day(2024, 6, 3), bEnd: day(2024, 6, 7),
			expected: true,
		},
		{
			name:   "shared boundary day conflicts",
			aStart: day(2024, 6, 1), aEnd: day(2024, 6, 5),
			bStart: day(2024, 6, 5), bEnd: day(2024, 6, 10),
			expected: true,
		},
		{
			name:   "adjacent day does not conflict",
			aStart: day(2024, 6, 1), aEnd: day(2024, 6, 5),
			bStart: day(2024, 6, 6), bEnd: day(2024, 6, 10),
			expected: false,
		},
		{
			name:   "entirely before",
			aStart: day(2024, 6, 10), aEnd: day(2024, 6, 15),
			bStart: day(2024, 6, 1), bEnd: day(2024, 6, 5),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := models.Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHasConflict(t *testing.T) {
	carID := uuid.New()
	confirmed := models.Booking{
		ID:        uuid.New(),
		CarID:     carID,
		StartDate: day(2024, 6, 1),
		EndDate:   day(2024, 6, 5),
		Status:    models.StatusConfirmed,
	}
	cancelled := models.Booking{
		ID:        uuid.New(),
		CarID:     carID,
		StartDate: day(2024, 6, 1),
		EndDate:   day(2024, 6, 5),
		Status:    models.StatusCancelled,
	}

	t.Run("overlapping confirmed booking conflicts", func(t *testing.T) {
		got := models.HasConflict([]models.Booking{confirmed}, day(2024, 6, 3), day(2024, 6, 7), uuid.Nil)
		assert.True(t, got)
	})

	t.Run("cancelled bookings are ignored", func(t *testing.T) {
		got := models.HasConflict([]models.Booking{cancelled}, day(2024, 6, 3), day(2024, 6, 7), uuid.Nil)
		assert.False(t, got)
	})

	t.Run("excluded booking does not conflict with itself", func(t *testing.T) {
		got := models.HasConflict([]models.Booking{confirmed}, day(2024, 6, 2), day(2024, 6, 6), confirmed.ID)
		assert.False(t, got)
	})

	t.Run("pending booking still holds the car", func(t *testing.T) {
		pending := confirmed
		pending.ID = uuid.New()
		pending.Status = models.StatusPending
		got := models.HasConflict([]models.Booking{pending}, day(2024, 6, 5), day(2024, 6, 8), uuid.Nil)
		assert.True(t, got)
	})
}

func TestComputePrice(t *testing.T) {
	fees := models.FeeSchedule{ServiceFeeCents: 2500}

	t.Run("same day charges one day plus fee", func(t *testing.T) {
		total, err := models.ComputePrice(5000, day(2024, 6, 1), day(2024, 6, 1), fees)
		require.NoError(t, err)
		assert.Equal(t, int64(5000*1+2500), total)
	})

	t.Run("both boundary days are charged", func(t *testing.T) {
		total, err := models.ComputePrice(5000, day(2024, 6, 6), day(2024, 6, 10), fees)
		require.NoError(t, err)
		assert.Equal(t, int64(5000*5+2500), total)
	})

	t.Run("partial trailing day charges in full", func(t *testing.T) {
		end := day(2024, 6, 2).Add(6 * time.Hour)
		total, err := models.ComputePrice(5000, day(2024, 6, 1), end, fees)
		require.NoError(t, err)
		assert.Equal(t, int64(5000*2+2500), total)
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := models.ComputePrice(7331, day(2024, 6, 1), day(2024, 6, 9), fees)
		require.NoError(t, err)
		b, err := models.ComputePrice(7331, day(2024, 6, 1), day(2024, 6, 9), fees)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		_, err := models.ComputePrice(5000, day(2024, 6, 5), day(2024, 6, 1), fees)
		assert.ErrorIs(t, err, models.ErrInvalidRange)
	})
}

func TestDeriveStatus(t *testing.T) {
	start := day(2024, 1, 10)
	end := day(2024, 1, 15)

	tests := []struct {
		name     string
		stored   models.BookingStatus
		now      time.Time
		expected models.DisplayStatus
	}{
		{"before start is upcoming", models.StatusConfirmed, day(2024, 1, 5), models.DisplayUpcoming},
		{"inside range is active", models.StatusConfirmed, day(2024, 1, 12), models.DisplayActive},
		{"on start day is active", models.StatusConfirmed, start, models.DisplayActive},
		{"on end day is active", models.StatusConfirmed, end, models.DisplayActive},
		{"after end is completed", models.StatusConfirmed, day(2024, 1, 20), models.DisplayCompleted},
		{"cancelled before start", models.StatusCancelled, day(2024, 1, 5), models.DisplayCancelled},
		{"cancelled mid range", models.StatusCancelled, day(2024, 1, 12), models.DisplayCancelled},
		{"cancelled after end", models.StatusCancelled, day(2024, 1, 20), models.DisplayCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := models.DeriveStatus(tt.stored, start, end, tt.now)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestToResponse(t *testing.T) {
	booking := models.Booking{
		ID:        uuid.New(),
		StartDate: day(2024, 1, 10),
		EndDate:   day(2024, 1, 15),
		Status:    models.StatusConfirmed,
	}

	resp := booking.ToResponse(day(2024, 1, 12))
	assert.Equal(t, booking.ID, resp.ID)
	assert.Equal(t, models.DisplayActive, resp.DisplayStatus)
}
