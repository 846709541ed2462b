package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	models "github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/ports"
)

type bookingService struct {
	repo    ports.BookingRepository
	carRepo ports.CarRepository
	fees    models.FeeSchedule
	log     *zap.Logger
	now     func() time.Time
}

func NewBookingService(repo ports.BookingRepository, carRepo ports.CarRepository, fees models.FeeSchedule, log *zap.Logger) *bookingService {
	return &bookingService{
		repo:    repo,
		carRepo: carRepo,
		fees:    fees,
		log:     log,
		now:     time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *models.BookingRequest) (*models.BookingResponse, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, models.ErrInvalidRange
	}

	car, err := s.carRepo.GetCarByID(ctx, req.CarID)
	if err != nil {
		return nil, s.storeErr("fetching car", err)
	}
	if !car.Available {
		return nil, models.ErrCarUnavailable
	}

	price, err := models.ComputePrice(car.DailyRateCents, req.StartDate, req.EndDate, s.fees)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		UserID:          userID,
		CarID:           req.CarID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		TotalPriceCents: price,
	}

	saved, err := s.repo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, s.storeErr("creating booking", err)
	}

	s.log.Info("booking created",
		zap.String("booking_id", saved.ID.String()),
		zap.String("car_id", saved.CarID.String()),
		zap.Int64("total_price_cents", saved.TotalPriceCents),
	)

	resp := saved.ToResponse(s.now())
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*models.BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, s.storeErr("fetching booking", err)
	}
	if booking.UserID != userID {
		return nil, models.ErrForbidden
	}
	if booking.Status == models.StatusCancelled {
		return nil, models.ErrAlreadyCancelled
	}

	updated, err := s.repo.UpdateBookingStatus(ctx, bookingID, models.StatusCancelled)
	if err != nil {
		return nil, s.storeErr("cancelling booking", err)
	}

	s.log.Info("booking cancelled", zap.String("booking_id", bookingID.String()))

	resp := updated.ToResponse(s.now())
	return &resp, nil
}

func (s *bookingService) ModifyBooking(ctx context.Context, userID, bookingID uuid.UUID, req *models.ModifyBookingRequest) (*models.BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, s.storeErr("fetching booking", err)
	}
	if booking.UserID != userID {
		return nil, models.ErrForbidden
	}
	// only a confirmed booking that has not started yet may move
	if booking.Status != models.StatusConfirmed || !booking.StartDate.After(s.now()) {
		return nil, models.ErrNotModifiable
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, models.ErrInvalidRange
	}

	car, err := s.carRepo.GetCarByID(ctx, booking.CarID)
	if err != nil {
		return nil, s.storeErr("fetching car", err)
	}

	price, err := models.ComputePrice(car.DailyRateCents, req.StartDate, req.EndDate, s.fees)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateBookingRange(ctx, bookingID, req.StartDate, req.EndDate, price)
	if err != nil {
		return nil, s.storeErr("modifying booking", err)
	}

	s.log.Info("booking modified",
		zap.String("booking_id", bookingID.String()),
		zap.Int64("total_price_cents", price),
	)

	resp := updated.ToResponse(s.now())
	return &resp, nil
}

func (s *bookingService) UserBookings(ctx context.Context, req models.GetBookingsRequest) (*models.AllBookingsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	bookings, nextCursor, err := s.repo.GetBookingsByUser(ctx, req.UserID, req.Cursor, limit)
	if err != nil {
		return nil, s.storeErr("fetching bookings", err)
	}

	now := s.now()
	response := &models.AllBookingsResponse{
		Bookings: make([]models.BookingResponse, len(bookings)),
		Limit:    limit,
		Cursor:   nextCursor,
	}
	for i, booking := range bookings {
		response.Bookings[i] = booking.ToResponse(now)
	}

	return response, nil
}

// storeErr passes domain outcomes through untouched and collapses anything
// else into a generic store failure so internals never reach the caller.
func (s *bookingService) storeErr(op string, err error) error {
	for _, domain := range []error{
		models.ErrCarNotFound,
		models.ErrBookingNotFound,
		models.ErrCarUnavailable,
		models.ErrDateConflict,
	} {
		if errors.Is(err, domain) {
			return err
		}
	}
	s.log.Error("store failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, models.ErrStore)
}
