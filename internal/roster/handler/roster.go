package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cabroster/internal/roster/service"
	"cabroster/pkg/config"
	apperrors "cabroster/pkg/errors"
	httputil "cabroster/pkg/http"
	"cabroster/pkg/logger"
	"cabroster/pkg/middleware"
	"cabroster/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RosterHandler struct {
	service service.RosterService
	log     *logger.Logger
}

func NewRosterHandler(service service.RosterService, log *logger.Logger) *RosterHandler {
	return &RosterHandler{
		service: service,
		log:     log,
	}
}

// ListShifts returns a page of shifts. Paging uses page/page_size so the
// dashboard can walk the list without tracking offsets.
func (h *RosterHandler) ListShifts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	page := 1
	if s := query.Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid page parameter: "+s)); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "ListShifts", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		page = v
	}

	pageSize := 0
	if s := query.Get("page_size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid page_size parameter: "+s)); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "ListShifts", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		pageSize = v
	}

	if page <= 0 {
		page = 1
	}
	pageSize = config.NormalizePaginationLimit(pageSize)

	shifts, total, err := h.service.ListShifts(r.Context(), page, pageSize)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListShifts", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	offset := int64(page-1) * int64(pageSize)
	if err := httputil.WritePaginated(w, shifts, total, pageSize, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListShifts", "operation", "WritePaginated", "error", err)
	}
}

func (h *RosterHandler) GetShift(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid shift id")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetShift", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	shift, err := h.service.GetShift(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetShift", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, shift); err != nil {
		h.log.Error("failed to write success response", "handler", "GetShift", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RosterHandler) ListNodalPoints(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	points, err := h.service.ListNodalPoints(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListNodalPoints", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, points); err != nil {
		h.log.Error("failed to write success response", "handler", "ListNodalPoints", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RosterHandler) GetNodalPoint(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid nodal point id")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetNodalPoint", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	np, err := h.service.GetNodalPoint(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetNodalPoint", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, np); err != nil {
		h.log.Error("failed to write success response", "handler", "GetNodalPoint", "operation", "WriteSuccess", "error", err)
	}
}

// CreateNodalPoint adds a pickup location. Admin only.
func (h *RosterHandler) CreateNodalPoint(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if middleware.RoleFromContext(r.Context()) != model.RoleAdmin {
		h.log.Warn("Admin-only endpoint denied",
			"handler", "CreateNodalPoint",
			"user_id", middleware.UserIDFromContext(r.Context()),
		)
		if writeErr := httputil.WriteError(w, apperrors.Forbidden("admin access required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateNodalPoint", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var np model.NodalPoint
	if err := json.NewDecoder(r.Body).Decode(&np); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid nodal point request")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateNodalPoint", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.CreateNodalPoint(r.Context(), &np); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateNodalPoint", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, np); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateNodalPoint", "operation", "WriteCreated", "error", err)
	}
}

func (h *RosterHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/shifts", h.ListShifts)
	router.GET("/api/v1/shifts/:id", h.GetShift)
	router.GET("/api/v1/nodal-points", h.ListNodalPoints)
	router.GET("/api/v1/nodal-points/:id", h.GetNodalPoint)
	router.POST("/api/v1/nodal-points", h.CreateNodalPoint)
}
