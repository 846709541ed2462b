package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	models "github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/auth"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/ports"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/utils"
	"github.com/mohamed-arshad-ch/rent-a-car-web-sub000/internal/validator"
)

// BookingHandler serves the booking collection: POST creates a booking for the
// authenticated caller, GET lists the caller's bookings with their display
// status.
func BookingHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			createBooking(service, w, r)
		case http.MethodGet:
			listBookings(service, w, r)
		}
	}
}

// BookingItemHandler serves a single booking: DELETE cancels it, PATCH moves
// its date range.
func BookingItemHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID, ok := pathID(w, r, "/bookings/")
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodDelete:
			cancelBooking(service, bookingID, w, r)
		case http.MethodPatch:
			modifyBooking(service, bookingID, w, r)
		}
	}
}

// CarsHandler serves the car catalogue: GET is public, POST is admin only.
func CarsHandler(service ports.CarService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			listCars(service, w, r)
		case http.MethodPost:
			createCar(service, w, r)
		}
	}
}

func RegisterHandler(service ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		ans, err := service.Register(r.Context(), &req)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusCreated, ans)
	}
}

func LoginHandler(service ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		ans, err := service.Login(r.Context(), &req)
		if err != nil {
			ae := getApiError(err)
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		utils.RenderResponse(r, w, http.StatusOK, ans)
	}
}

func createBooking(service ports.BookingService, w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req models.BookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	ans, err := service.CreateBooking(r.Context(), identity.UserID, &req)
	if err != nil {
		ae := getApiError(err)
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(r, w, http.StatusCreated, ans)
}

func listBookings(service ports.BookingService, w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	req := models.GetBookingsRequest{
		UserID: identity.UserID,
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	}
	ans, err := service.UserBookings(r.Context(), req)
	if err != nil {
		ae := getApiError(err)
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, ans)
}

func cancelBooking(service ports.BookingService, bookingID uuid.UUID, w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	ans, err := service.CancelBooking(r.Context(), identity.UserID, bookingID)
	if err != nil {
		ae := getApiError(err)
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, ans)
}

func modifyBooking(service ports.BookingService, bookingID uuid.UUID, w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	var req models.ModifyBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	ans, err := service.ModifyBooking(r.Context(), identity.UserID, bookingID, &req)
	if err != nil {
		ae := getApiError(err)
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, ans)
}

func listCars(service ports.CarService, w http.ResponseWriter, r *http.Request) {
	cars, err := service.ListCars(r.Context())
	if err != nil {
		ae := getApiError(err)
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(r, w, http.StatusOK, cars)
}

func createCar(service ports.CarService, w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	if identity.Role != models.RoleAdmin {
		ae := utils.NewForbidden("admin role required")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	var req models.CarRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	car, err := service.CreateCar(r.Context(), &req)
	if err != nil {
		ae := getApiError(err)
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return
	}
	utils.RenderResponse(r, w, http.StatusCreated, car)
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := utils.JsonDecodeBody(r, dst); err != nil {
		ae := utils.NewBadRequest("error json decoding body")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return false
	}
	v := validator.NewCustomValidator()
	if err := v.Validate(dst); err != nil {
		ae := utils.NewBadRequest(err.Error())
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return false
	}
	return true
}

func callerIdentity(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		ae := utils.NewUnauthorized("authentication required")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return nil, false
	}
	return identity, true
}

func pathID(w http.ResponseWriter, r *http.Request, prefix string) (uuid.UUID, bool) {
	idx := strings.Index(r.URL.Path, prefix)
	if idx < 0 {
		ae := utils.NewBadRequest("missing booking id")
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return uuid.Nil, false
	}
	raw := strings.Trim(r.URL.Path[idx+len(prefix):], "/")
	id, err := uuid.Parse(raw)
	if err != nil {
		ae := utils.NewBadRequest(models.ErrInvalidUUID.Error())
		utils.RenderResponse(r, w, ae.StatusCode, ae)
		return uuid.Nil, false
	}
	return id, true
}

func getApiError(err error) utils.ApiError {
	ae := utils.ApiError{Msg: err.Error()}
	switch {
	case errors.Is(err, models.ErrInvalidUUID),
		errors.Is(err, models.ErrInvalidRange):
		ae.StatusCode = http.StatusBadRequest
	case errors.Is(err, models.ErrBadCredentials):
		ae.StatusCode = http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		ae.StatusCode = http.StatusForbidden
	case errors.Is(err, models.ErrCarNotFound),
		errors.Is(err, models.ErrBookingNotFound):
		ae.StatusCode = http.StatusNotFound
	case errors.Is(err, models.ErrCarUnavailable),
		errors.Is(err, models.ErrDateConflict),
		errors.Is(err, models.ErrNotModifiable),
		errors.Is(err, models.ErrAlreadyCancelled),
		errors.Is(err, models.ErrEmailTaken):
		ae.StatusCode = http.StatusConflict
	default:
		ae.StatusCode = http.StatusInternalServerError
		ae.Msg = "internal server error"
	}
	return ae
}
