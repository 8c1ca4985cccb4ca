package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/attendance"
	"github.com/paneldesk/timetrack-backend-go/internal/domain/user"
	"github.com/paneldesk/timetrack-backend-go/internal/handler/http/response"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/validator"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Search(w http.ResponseWriter, r *http.Request)
	BulkUpdate(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	KPICards(w http.ResponseWriter, r *http.Request)
	ReportingManagers(w http.ResponseWriter, r *http.Request)
	ProjectManagers(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{
		userService: userService,
	}
}

// Create implements UserHandler.
func (h *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.userService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created successfully", result)
}

// Get implements UserHandler.
func (h *UserHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "User ID must be a valid UUID", nil)
		return
	}

	result, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements UserHandler.
func (h *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "User ID must be a valid UUID", nil)
		return
	}

	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.userService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated successfully", result)
}

// Search implements UserHandler.
func (h *UserHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	filters, err := parseSearchFilters(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rows, total, err := h.userService.Search(r.Context(), filters)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, rows, response.NewMeta(filters.Page, filters.Limit, total))
}

// BulkUpdate implements UserHandler.
func (h *UserHandlerImpl) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req user.BulkUpdateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkUpdate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.userService.BulkUpdate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk update processed", result)
}

// Deactivate implements UserHandler.
func (h *UserHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "User ID must be a valid UUID", nil)
		return
	}

	if err := h.userService.Deactivate(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deactivated successfully", nil)
}

// KPICards implements UserHandler.
func (h *UserHandlerImpl) KPICards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.userService.KPICards(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cards)
}

// ReportingManagers implements UserHandler.
func (h *UserHandlerImpl) ReportingManagers(w http.ResponseWriter, r *http.Request) {
	options, err := h.userService.ReportingManagers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, options)
}

// ProjectManagers implements UserHandler.
func (h *UserHandlerImpl) ProjectManagers(w http.ResponseWriter, r *http.Request) {
	options, err := h.userService.ProjectManagers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, options)
}

func parseSearchFilters(r *http.Request) (user.SearchFilters, error) {
	var errs validator.ValidationErrors
	var filters user.SearchFilters

	q := r.URL.Query()

	if v := q.Get("name"); v != "" {
		filters.Name = &v
	}
	if v := q.Get("email"); v != "" {
		filters.Email = &v
	}
	if v := q.Get("work_role"); v != "" {
		filters.WorkRole = &v
	}

	if v := q.Get("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "is_active",
				Message: "is_active must be true or false",
			})
		} else {
			filters.IsActive = &active
		}
	}

	if v := q.Get("allocated"); v != "" {
		allocated, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "allocated",
				Message: "allocated must be true or false",
			})
		} else {
			filters.Allocated = &allocated
		}
	}

	if v := q.Get("status"); v != "" {
		status := attendance.Status(v)
		if !status.IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be PRESENT, LEAVE, ABSENT or UNKNOWN",
			})
		} else {
			filters.Status = &status
		}
	}

	if v := q.Get("date"); v != "" {
		if t, ok := validator.IsValidDate(v); ok {
			filters.Date = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	filters.Page, _ = strconv.Atoi(q.Get("page"))
	filters.Limit, _ = strconv.Atoi(q.Get("limit"))
	filters.Normalize()

	if len(errs) > 0 {
		return filters, errs
	}

	return filters, nil
}
