package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	models "github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal"
)

type BookingRepository interface {
	// CreateBooking runs the conflict check and the insert in one
	// transaction, locking the car row for its duration.
	CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	// UpdateBookingRange replaces a booking's dates and price, re-running
	// the conflict check under the same car lock and skipping the booking
	// itself.
	UpdateBookingRange(ctx context.Context, id uuid.UUID, start, end time.Time, priceCents int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error)
	GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetBookingsByUser(ctx context.Context, userID uuid.UUID, afterCursor string, limit int) ([]models.Booking, string, error)
}

type CarRepository interface {
	CreateCar(ctx context.Context, car *models.Car) (*models.Car, error)
	GetCarByID(ctx context.Context, id uuid.UUID) (*models.Car, error)
	ListCars(ctx context.Context) ([]models.Car, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *models.BookingRequest) (*models.BookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) (*models.BookingResponse, error)
	ModifyBooking(ctx context.Context, userID, bookingID uuid.UUID, req *models.ModifyBookingRequest) (*models.BookingResponse, error)
	UserBookings(ctx context.Context, req models.GetBookingsRequest) (*models.AllBookingsResponse, error)
}

type CarService interface {
	CreateCar(ctx context.Context, req *models.CarRequest) (*models.Car, error)
	ListCars(ctx context.Context) ([]models.Car, error)
}

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
}
