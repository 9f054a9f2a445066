package appointment

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/dto"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

type SearchInput struct {
	BusinessID uint
	Status     string // comma separated
	Date       string
	From       string
	To         string
	Page       int
	Limit      int
}

type SearchResult struct {
	Items []dto.AppointmentDTO
	Total int64
	Page  int
	Limit int
}

type SearchAppointments struct {
	repo domain.Repository
}

func NewSearchAppointments(repo domain.Repository) *SearchAppointments {
	return &SearchAppointments{repo: repo}
}

func (uc *SearchAppointments) Execute(ctx context.Context, in SearchInput) (*SearchResult, error) {
	f := domain.SearchFilter{BusinessID: in.BusinessID, Page: in.Page, Limit: in.Limit}

	for _, raw := range strings.Split(in.Status, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		st, ok := domain.ParseStatus(raw)
		if !ok {
			return nil, httperr.ErrValidation("invalid_status")
		}
		f.Statuses = append(f.Statuses, st)
	}

	for _, p := range []struct {
		raw string
		dst **time.Time
	}{
		{in.Date, &f.Date},
		{in.From, &f.From},
		{in.To, &f.To},
	} {
		if p.raw == "" {
			continue
		}
		d, err := parseDate(p.raw)
		if err != nil {
			return nil, err
		}
		*p.dst = &d
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	apps, total, err := uc.repo.SearchAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Items: dto.FromAppointments(apps),
		Total: total,
		Page:  f.Page,
		Limit: f.Limit,
	}, nil
}
