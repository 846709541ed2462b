package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidUUID      = errors.New("invalid uuid")
	ErrInvalidRange     = errors.New("start date must not be after end date")
	ErrCarUnavailable   = errors.New("car is not available for booking")
	ErrDateConflict     = errors.New("car is already booked for the requested dates")
	ErrCarNotFound      = errors.New("car not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrForbidden        = errors.New("booking belongs to another user")
	ErrNotModifiable    = errors.New("booking can no longer be modified")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrStore            = errors.New("store failure")
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// DisplayStatus is computed at read time from the stored status and the
// booking's date range. It is never persisted.
type DisplayStatus string

const (
	DisplayUpcoming  DisplayStatus = "upcoming"
	DisplayActive    DisplayStatus = "active"
	DisplayCompleted DisplayStatus = "completed"
	DisplayCancelled DisplayStatus = "cancelled"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type Car struct {
	ID             uuid.UUID `json:"id"`
	Make           string    `json:"make"`
	Model          string    `json:"model"`
	Available      bool      `json:"available"`
	DailyRateCents int64     `json:"daily_rate_cents"`
	CreatedAt      time.Time `json:"created_at"`
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Booking struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	CarID           uuid.UUID     `json:"car_id"`
	StartDate       time.Time     `json:"start_date"`
	EndDate         time.Time     `json:"end_date"`
	Status          BookingStatus `json:"status"`
	TotalPriceCents int64         `json:"total_price_cents"`
	CreatedAt       time.Time     `json:"created_at"`
}

type BookingRequest struct {
	CarID     uuid.UUID `json:"car_id" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

type ModifyBookingRequest struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

type BookingResponse struct {
	Booking
	DisplayStatus DisplayStatus `json:"display_status"`
}

type AllBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Limit    int               `json:"limit"`
	Cursor   string            `json:"cursor"`
}

type GetBookingsRequest struct {
	UserID uuid.UUID
	Limit  int
	Cursor string
}

type CarRequest struct {
	Make           string `json:"make" validate:"required,max=50"`
	Model          string `json:"model" validate:"required,max=50"`
	Available      bool   `json:"available"`
	DailyRateCents int64  `json:"daily_rate_cents" validate:"gte=0"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
