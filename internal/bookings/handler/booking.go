package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cabroster/internal/bookings/service"
	apperrors "cabroster/pkg/errors"
	httputil "cabroster/pkg/http"
	"cabroster/pkg/logger"
	"cabroster/pkg/middleware"
	"cabroster/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// Book creates one booking per requested date for the caller.
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid booking request")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	// The token is authoritative for identity; the body field only
	// matters for unauthenticated internal calls.
	if userID := middleware.UserIDFromContext(r.Context()); userID != "" {
		req.UserID = userID
	}

	bookings, err := h.service.Book(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Book", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, bookings); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "operation", "WriteCreated", "error", err)
	}
}

// BookRange creates a single booking covering a date range.
func (h *BookingHandler) BookRange(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.DateRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid booking request")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BookRange", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if userID := middleware.UserIDFromContext(r.Context()); userID != "" {
		req.UserID = userID
	}

	booking, err := h.service.BookRange(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BookRange", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "BookRange", "operation", "WriteCreated", "error", err)
	}
}

// GetAll lists every booking with display labels. Admin only.
func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !h.requireAdmin(w, r, "GetAll") {
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	views, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, views, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

// GetStatus returns a single booking with display labels.
func (h *BookingHandler) GetStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	view, err := h.service.GetStatus(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "GetStatus", "operation", "WriteSuccess", "error", err)
	}
}

// UpdateStatus approves or rejects a booking. The body is a bare JSON
// string, e.g. "Approved". Admin only.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !h.requireAdmin(w, r, "UpdateStatus") {
		return
	}

	var status string
	if err := json.NewDecoder(r.Body).Decode(&status); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid status")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), status)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "operation", "WriteSuccess", "error", err)
	}
}

// AvailableDates returns the caller's bookable weekdays inside the
// booking window. The optional weeks parameter narrows or widens the
// window; omitting it uses the configured default.
func (h *BookingHandler) AvailableDates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		userID = r.URL.Query().Get("user_id")
	}

	var weeks int
	if raw := r.URL.Query().Get("weeks"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid weeks parameter: "+raw)); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "AvailableDates", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		weeks = parsed
	}

	dates, err := h.service.AvailableDates(r.Context(), userID, weeks)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "AvailableDates", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, dates); err != nil {
		h.log.Error("failed to write success response", "handler", "AvailableDates", "operation", "WriteSuccess", "error", err)
	}
}

// Export streams every booking as an Excel workbook. Admin only.
func (h *BookingHandler) Export(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !h.requireAdmin(w, r, "Export") {
		return
	}

	data, err := h.service.Export(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Export", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Error("failed to write export response", "handler", "Export", "error", err)
	}
}

func (h *BookingHandler) requireAdmin(w http.ResponseWriter, r *http.Request, handler string) bool {
	if middleware.RoleFromContext(r.Context()) == model.RoleAdmin {
		return true
	}

	h.log.Warn("Admin-only endpoint denied",
		"handler", handler,
		"user_id", middleware.UserIDFromContext(r.Context()),
	)

	if writeErr := httputil.WriteError(w, apperrors.Forbidden("admin access required")); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
	return false
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings/book", h.Book)
	router.POST("/api/v1/bookings/book-date-range", h.BookRange)
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/bookings/status/:id", h.GetStatus)
	router.PUT("/api/v1/bookings/update-status/:id", h.UpdateStatus)
	router.GET("/api/v1/bookings/available-dates", h.AvailableDates)
	router.GET("/api/v1/bookings/export", h.Export)
}
