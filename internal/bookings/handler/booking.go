package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"resort/internal/bookings/service"
	"resort/pkg/config"
	apperrors "resort/pkg/errors"
	httpresp "resort/pkg/http"
	"resort/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	cfg     *config.Config
	service service.BookingService
}

func NewBookingHandler(cfg *config.Config, svc service.BookingService) *BookingHandler {
	return &BookingHandler{
		cfg:     cfg,
		service: svc,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodPost, "/api/bookings", h.CreateBooking)
	router.HandlerFunc(http.MethodGet, "/api/bookings", h.ListBookings)
	router.Handle(http.MethodGet, "/api/bookings/:id", h.GetBooking)
	router.Handle(http.MethodPost, "/api/bookings/:id/cancel", h.CancelBooking)
	router.Handle(http.MethodDelete, "/api/bookings/:id", h.DeleteBooking)
	router.HandlerFunc(http.MethodGet, "/api/rooms", h.ListRooms)
	router.Handle(http.MethodGet, "/api/rooms/:id", h.GetRoom)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err == io.EOF {
			httpresp.WriteError(w, apperrors.InvalidInput("Request body is required"))
			return
		}
		httpresp.WriteError(w, apperrors.InvalidInput("Invalid JSON in request body"))
		return
	}

	result, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		httpresp.WriteError(w, err)
		return
	}

	h.cfg.Log.Info("Booking created",
		"booking_id", result.ID,
		"reference", result.Reference,
		"rooms", len(result.AllocatedRooms))
	httpresp.WriteCreated(w, result)
}

// ListBookings returns a paginated page, or the guest's bookings when
// guest_email is given.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	if email := r.URL.Query().Get("guest_email"); email != "" {
		bookings, err := h.service.GetBookingsByGuestEmail(r.Context(), email)
		if err != nil {
			httpresp.WriteError(w, err)
			return
		}
		httpresp.WriteSuccess(w, bookings)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64)

	bookings, total, err := h.service.GetAllBookings(r.Context(), limit, offset)
	if err != nil {
		httpresp.WriteError(w, err)
		return
	}
	httpresp.WritePaginated(w, bookings, total, config.NormalizePaginationLimit(limit), config.NormalizeOffset(offset))
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetBookingByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httpresp.WriteError(w, err)
		return
	}
	httpresp.WriteSuccess(w, booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := h.service.CancelBooking(r.Context(), id); err != nil {
		httpresp.WriteError(w, err)
		return
	}
	h.cfg.Log.Info("Booking cancelled", "booking_id", id)
	httpresp.WriteSuccess(w, map[string]string{"id": id, "status": model.StatusCancelled})
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if err := h.service.DeleteBooking(r.Context(), id); err != nil {
		httpresp.WriteError(w, err)
		return
	}
	h.cfg.Log.Info("Booking deleted", "booking_id", id)
	httpresp.WriteNoContent(w)
}

// ListRooms lists sellable rooms. With availableStart and availableEnd it
// filters to rooms free for the whole range.
func (h *BookingHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, end, err := parseRange(query.Get("availableStart"), query.Get("availableEnd"))
	if err != nil {
		httpresp.WriteError(w, err)
		return
	}

	rooms, err := h.service.AvailableRooms(r.Context(), start, end)
	if err != nil {
		httpresp.WriteError(w, err)
		return
	}
	httpresp.WriteSuccess(w, rooms)
}

func (h *BookingHandler) GetRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.RoomByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httpresp.WriteError(w, err)
		return
	}
	httpresp.WriteSuccess(w, room)
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" && endStr == "" {
		return time.Time{}, time.Time{}, nil
	}
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("availableStart and availableEnd must be provided together")
	}
	start, err := time.ParseInLocation(dateLayout, startStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("availableStart must be a YYYY-MM-DD date")
	}
	end, err := time.ParseInLocation(dateLayout, endStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("availableEnd must be a YYYY-MM-DD date")
	}
	return start, end, nil
}
