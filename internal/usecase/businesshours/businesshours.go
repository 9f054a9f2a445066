package businesshours

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type Repository interface {
	GetBusinessByID(ctx context.Context, id uint) (*models.Business, error)
	GetBusinessHours(ctx context.Context, businessID uint) (*models.BusinessHours, error)
	SaveBusinessHours(ctx context.Context, h *models.BusinessHours) error
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// Get
// ======================================================

type GetBusinessHours struct {
	repo   Repository
	logger *slog.Logger
}

func NewGetBusinessHours(repo Repository, logger *slog.Logger) *GetBusinessHours {
	return &GetBusinessHours{repo: repo, logger: logger}
}

// Execute returns the stored week, creating the default one on first read.
func (uc *GetBusinessHours) Execute(ctx context.Context, businessID uint) (schedule.Week, error) {
	if _, err := uc.repo.GetBusinessByID(ctx, businessID); err != nil {
		return schedule.Week{}, businessNotFound(err)
	}

	h, err := uc.repo.GetBusinessHours(ctx, businessID)
	if err == nil {
		return schedule.NormalizeWeek(h.Week()), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return schedule.Week{}, err
	}

	week := schedule.NormalizeWeek(schedule.DefaultWeek())
	created := models.NewBusinessHours(businessID, week)
	if err := uc.repo.SaveBusinessHours(ctx, &created); err != nil {
		return schedule.Week{}, err
	}

	uc.logger.Info("default business hours created", "business_id", businessID)
	return week, nil
}

// ======================================================
// Save
// ======================================================

type SaveBusinessHours struct {
	repo  Repository
	audit Auditor
}

func NewSaveBusinessHours(repo Repository, audit Auditor) *SaveBusinessHours {
	return &SaveBusinessHours{repo: repo, audit: audit}
}

// Execute normalizes week and replaces the stored record. The normalized
// week is what gets persisted and returned.
func (uc *SaveBusinessHours) Execute(ctx context.Context, businessID uint, week schedule.Week) (schedule.Week, error) {
	if _, err := uc.repo.GetBusinessByID(ctx, businessID); err != nil {
		return schedule.Week{}, businessNotFound(err)
	}

	normalized := schedule.NormalizeWeek(week)
	h := models.NewBusinessHours(businessID, normalized)
	if err := uc.repo.SaveBusinessHours(ctx, &h); err != nil {
		return schedule.Week{}, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		Actor:      audit.ActorBusiness,
		Action:     "business_hours_updated",
		Entity:     "business_hours",
		EntityID:   &h.ID,
	})

	return normalized, nil
}

func businessNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound("business_not_found")
	}
	return err
}
