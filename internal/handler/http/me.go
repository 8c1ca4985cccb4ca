package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/auth"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/session"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/user"
	"github.com/paneldesk/timetrack-backend-go/internal/handler/http/response"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/validator"
)

// MeHandler serves the authenticated user's own profile and calendar.
type MeHandler interface {
	GetProfile(w http.ResponseWriter, r *http.Request)
	GetAttendance(w http.ResponseWriter, r *http.Request)
	UpdateWeekoffs(w http.ResponseWriter, r *http.Request)
}

type MeHandlerImpl struct {
	userService    user.UserService
	sessionService session.SessionService
}

func NewMeHandler(userService user.UserService, sessionService session.SessionService) MeHandler {
	return &MeHandlerImpl{
		userService:    userService,
		sessionService: sessionService,
	}
}

// GetProfile implements MeHandler.
func (h *MeHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAttendance implements MeHandler.
func (h *MeHandlerImpl) GetAttendance(w http.ResponseWriter, r *http.Request) {
	var errs validator.ValidationErrors
	var from, to time.Time

	q := r.URL.Query()

	if v := q.Get("start_date"); v != "" {
		if t, ok := validator.IsValidDate(v); ok {
			from = t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if v := q.Get("end_date"); v != "" {
		if t, ok := validator.IsValidDate(v); ok {
			to = t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	days, err := h.sessionService.GetAttendanceCalendar(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}

// UpdateWeekoffs implements MeHandler.
func (h *MeHandlerImpl) UpdateWeekoffs(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateWeekoffsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update weekoffs decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.userService.UpdateWeekoffs(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekoffs updated successfully", result)
}
