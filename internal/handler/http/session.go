package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/session"
	"github.com/paneldesk/timetrack-backend-go/internal/handler/http/response"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/validator"
)

type SessionHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetActive(w http.ResponseWriter, r *http.Request)
	GetHome(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
}

type SessionHandlerImpl struct {
	sessionService session.SessionService
}

func NewSessionHandler(sessionService session.SessionService) SessionHandler {
	return &SessionHandlerImpl{
		sessionService: sessionService,
	}
}

// ClockIn implements SessionHandler.
func (h *SessionHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req session.ClockInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.sessionService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements SessionHandler.
func (h *SessionHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req session.ClockOutRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.sessionService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// GetActive implements SessionHandler.
func (h *SessionHandlerImpl) GetActive(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.GetActiveSession(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// result is nil when no session is open; the client treats that as
	// "clocked out".
	response.Success(w, result)
}

// GetHome implements SessionHandler.
func (h *SessionHandlerImpl) GetHome(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.GetHomeSnapshot(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetHistory implements SessionHandler.
func (h *SessionHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	filter, err := parseHistoryFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	sessions, total, err := h.sessionService.GetHistory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, sessions, response.NewMeta(filter.Page, filter.Limit, total))
}

// Approve implements SessionHandler.
func (h *SessionHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(sessionID) {
		response.BadRequest(w, "Session ID must be a valid UUID", nil)
		return
	}

	var req session.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Approve decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.sessionService.Approve(r.Context(), sessionID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review recorded", result)
}

func parseHistoryFilter(r *http.Request) (session.HistoryFilter, error) {
	var errs validator.ValidationErrors
	var filter session.HistoryFilter

	q := r.URL.Query()

	if v := q.Get("project_id"); v != "" {
		if !validator.IsValidUUID(v) {
			errs = append(errs, validator.ValidationError{
				Field:   "project_id",
				Message: "project_id must be a valid UUID",
			})
		} else {
			filter.ProjectID = &v
		}
	}

	if v := q.Get("start_date"); v != "" {
		if t, ok := validator.IsValidDate(v); ok {
			filter.StartDate = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if v := q.Get("end_date"); v != "" {
		if t, ok := validator.IsValidDate(v); ok {
			filter.EndDate = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Normalize()

	if len(errs) > 0 {
		return filter, errs
	}

	return filter, nil
}
