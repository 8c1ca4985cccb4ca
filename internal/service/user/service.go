package user

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/paneldesk/timetrack-backend-go/internal/domain/user"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/database"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/timeutil"
	"github.com/paneldesk/timetrack-backend-go/internal/pkg/validator"
)

type UserServiceImpl struct {
	db *database.DB
	user.UserRepository
	clock                 *timeutil.Clock
	notAllocatedProjectID string
}

func NewUserService(
	db *database.DB,
	userRepo user.UserRepository,
	clock *timeutil.Clock,
	notAllocatedProjectID string,
) user.UserService {
	return &UserServiceImpl{
		db:                    db,
		UserRepository:        userRepo,
		clock:                 clock,
		notAllocatedProjectID: notAllocatedProjectID,
	}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, err
	}
	hashStr := string(hash)

	var doj *time.Time
	if req.DOJ != nil {
		parsed, _ := time.Parse("2006-01-02", *req.DOJ)
		doj = &parsed
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Email:          req.Email,
		Name:           req.Name,
		PasswordHash:   &hashStr,
		Role:           user.Role(req.Role),
		WorkRole:       req.WorkRole,
		IsActive:       true,
		DefaultShiftID: req.DefaultShiftID,
		RPMUserID:      req.RPMUserID,
		Weekoffs:       req.Weekoffs,
		DOJ:            doj,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(created), nil
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(u), nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.applyUpdate(ctx, id, req)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(updated), nil
}

func (s *UserServiceImpl) applyUpdate(ctx context.Context, id string, req user.UpdateUserRequest) (user.User, error) {
	if req.RPMUserID != nil && *req.RPMUserID == id {
		return user.User{}, validator.ValidationErrors{{
			Field:   "rpm_user_id",
			Message: "user cannot be their own reporting manager",
		}}
	}

	existing, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Role != nil {
		existing.Role = user.Role(*req.Role)
	}
	if req.WorkRole != nil {
		existing.WorkRole = req.WorkRole
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if req.DefaultShiftID != nil {
		existing.DefaultShiftID = req.DefaultShiftID
	}
	if req.RPMUserID != nil {
		existing.RPMUserID = req.RPMUserID
	}
	if req.Weekoffs != nil {
		existing.Weekoffs = *req.Weekoffs
	}
	if req.QualityRating != nil {
		existing.QualityRating = req.QualityRating
	}
	if req.DOJ != nil {
		parsed, _ := time.Parse("2006-01-02", *req.DOJ)
		existing.DOJ = &parsed
	}
	if req.DOL != nil {
		parsed, _ := time.Parse("2006-01-02", *req.DOL)
		existing.DOL = &parsed
	}

	return s.UserRepository.Update(ctx, existing)
}

// Search implements user.UserService.
func (s *UserServiceImpl) Search(ctx context.Context, filters user.SearchFilters) ([]user.UserStatusRow, int64, error) {
	filters.Normalize()

	// Status reconciliation defaults to today in the organization timezone.
	if filters.Date == nil {
		today := s.clock.Today()
		filters.Date = &today
	}

	return s.UserRepository.SearchWithStatus(ctx, filters, s.notAllocatedProjectID)
}

// BulkUpdate implements user.UserService.
//
// Each item is applied independently: a failing user is reported in the
// result list and the rest of the batch still commits.
func (s *UserServiceImpl) BulkUpdate(ctx context.Context, req user.BulkUpdateRequest) (user.BulkUpdateResult, error) {
	if err := req.Validate(); err != nil {
		return user.BulkUpdateResult{}, err
	}

	result := user.BulkUpdateResult{
		Failures: make([]user.BulkUpdateFailure, 0),
	}

	for _, item := range req.Items {
		if err := item.Fields.Validate(); err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, user.BulkUpdateFailure{
				UserID: item.UserID,
				Error:  err.Error(),
			})
			continue
		}

		if _, err := s.applyUpdate(ctx, item.UserID, item.Fields); err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, user.BulkUpdateFailure{
				UserID: item.UserID,
				Error:  err.Error(),
			})
			continue
		}

		result.UpdatedCount++
	}

	return result, nil
}

// UpdateWeekoffs implements user.UserService.
func (s *UserServiceImpl) UpdateWeekoffs(ctx context.Context, req user.UpdateWeekoffsRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.UserResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	weekoffs := req.Weekoffs
	updated, err := s.applyUpdate(ctx, userID, user.UpdateUserRequest{Weekoffs: &weekoffs})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(updated), nil
}

// Deactivate implements user.UserService.
//
// Soft delete: the user stays in the database for history, stops matching
// active-population queries, and gets today stamped as their leaving date.
func (s *UserServiceImpl) Deactivate(ctx context.Context, id string) error {
	inactive := false
	dol := s.clock.Today().Format("2006-01-02")
	_, err := s.applyUpdate(ctx, id, user.UpdateUserRequest{
		IsActive: &inactive,
		DOL:      &dol,
	})
	return err
}

// KPICards implements user.UserService.
func (s *UserServiceImpl) KPICards(ctx context.Context) (user.KPICards, error) {
	return s.UserRepository.KPISummary(ctx, s.clock.Today(), s.notAllocatedProjectID)
}

// ReportingManagers implements user.UserService.
func (s *UserServiceImpl) ReportingManagers(ctx context.Context) ([]user.ManagerOption, error) {
	return s.UserRepository.ListReportingManagers(ctx)
}

// ProjectManagers implements user.UserService.
func (s *UserServiceImpl) ProjectManagers(ctx context.Context) ([]user.ManagerOption, error) {
	return s.UserRepository.ListProjectManagers(ctx)
}
