// Package memstore is an in-memory implementation of the repository ports
// used by usecase and handler tests. Transactions are serialized by one
// mutex, the way the business row lock serializes them in Postgres, and
// roll back on error.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/subscription"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/timezone"
)

type state struct {
	nextID        uint
	businesses    map[uint]models.Business
	services      map[uint]models.Service
	hours         map[uint]models.BusinessHours
	appointments  map[uint]models.Appointment
	subscriptions map[uint]models.Subscription
}

func newState() *state {
	return &state{
		businesses:    map[uint]models.Business{},
		services:      map[uint]models.Service{},
		hours:         map[uint]models.BusinessHours{},
		appointments:  map[uint]models.Appointment{},
		subscriptions: map[uint]models.Subscription{},
	}
}

func (s *state) clone() *state {
	c := newState()
	c.nextID = s.nextID
	for k, v := range s.businesses {
		c.businesses[k] = v
	}
	for k, v := range s.services {
		c.services[k] = v
	}
	for k, v := range s.hours {
		c.hours[k] = v
	}
	for k, v := range s.appointments {
		c.appointments[k] = v
	}
	for k, v := range s.subscriptions {
		c.subscriptions[k] = v
	}
	return c
}

func (s *state) id() uint {
	s.nextID++
	return s.nextID
}

type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   *state

	clock timezone.Clock
}

func New(clock timezone.Clock) *Store {
	return &Store{st: newState(), clock: clock}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) transaction(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	var snapshot *state
	s.read(func(st *state) { snapshot = st.clone() })

	if err := fn(); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// ===============================
// Seeding and inspection
// ===============================

func (s *Store) AddBusiness(b models.Business) models.Business {
	_ = s.write(func(st *state) error {
		if b.ID == 0 {
			b.ID = st.id()
		}
		if b.Timezone == "" {
			b.Timezone = "UTC"
		}
		st.businesses[b.ID] = b
		return nil
	})
	return b
}

func (s *Store) AddService(svc models.Service) models.Service {
	_ = s.write(func(st *state) error {
		if svc.ID == 0 {
			svc.ID = st.id()
		}
		st.services[svc.ID] = svc
		return nil
	})
	return svc
}

func (s *Store) SetHours(businessID uint, week schedule.Week) {
	_ = s.write(func(st *state) error {
		h := models.NewBusinessHours(businessID, schedule.NormalizeWeek(week))
		h.ID = st.id()
		st.hours[businessID] = h
		return nil
	})
}

func (s *Store) AddAppointment(ap models.Appointment) models.Appointment {
	_ = s.write(func(st *state) error {
		if ap.ID == 0 {
			ap.ID = st.id()
		}
		if ap.CreatedAt.IsZero() {
			ap.CreatedAt = s.clock.Now()
		}
		st.appointments[ap.ID] = ap
		return nil
	})
	return ap
}

func (s *Store) AddSubscription(sub models.Subscription) models.Subscription {
	_ = s.write(func(st *state) error {
		if sub.ID == 0 {
			sub.ID = st.id()
		}
		st.subscriptions[sub.ID] = sub
		return nil
	})
	return sub
}

func (s *Store) Appointment(id uint) (models.Appointment, bool) {
	var ap models.Appointment
	var ok bool
	s.read(func(st *state) { ap, ok = st.appointments[id] })
	return ap, ok
}

func (s *Store) Appointments() []models.Appointment {
	var out []models.Appointment
	s.read(func(st *state) {
		for _, ap := range st.appointments {
			out = append(out, ap)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Subscriptions() []models.Subscription {
	var out []models.Subscription
	s.read(func(st *state) {
		for _, sub := range st.subscriptions {
			out = append(out, sub)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Hours(businessID uint) (models.BusinessHours, bool) {
	var h models.BusinessHours
	var ok bool
	s.read(func(st *state) { h, ok = st.hours[businessID] })
	return h, ok
}

// Repo returns the appointment/business-hours repository view.
func (s *Store) Repo() *Repo {
	return &Repo{store: s}
}

func (s *Store) SubscriptionRepo() *SubscriptionRepo {
	return &SubscriptionRepo{store: s}
}

// ===============================
// Appointment repository
// ===============================

type Repo struct {
	store *Store
	inTx  bool
}

var _ domain.Repository = (*Repo)(nil)

func (r *Repo) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.store.transaction(func() error {
		return fn(&Repo{store: r.store, inTx: true})
	})
}

func (r *Repo) Subscriptions() subscription.Repository {
	return &SubscriptionRepo{store: r.store, inTx: r.inTx}
}

func (r *Repo) GetBusinessByID(_ context.Context, id uint) (*models.Business, error) {
	var b models.Business
	var ok bool
	r.store.read(func(st *state) { b, ok = st.businesses[id] })
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (r *Repo) LockBusiness(ctx context.Context, id uint) (*models.Business, error) {
	return r.GetBusinessByID(ctx, id)
}

func (r *Repo) GetBusinessHours(_ context.Context, businessID uint) (*models.BusinessHours, error) {
	h, ok := r.store.Hours(businessID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &h, nil
}

func (r *Repo) SaveBusinessHours(_ context.Context, h *models.BusinessHours) error {
	return r.store.write(func(st *state) error {
		if cur, ok := st.hours[h.BusinessID]; ok {
			h.ID = cur.ID
			h.CreatedAt = cur.CreatedAt
		} else {
			h.ID = st.id()
			h.CreatedAt = r.store.clock.Now()
		}
		h.UpdatedAt = r.store.clock.Now()
		st.hours[h.BusinessID] = *h
		return nil
	})
}

func (r *Repo) GetService(_ context.Context, businessID, serviceID uint) (*models.Service, error) {
	var svc models.Service
	var ok bool
	r.store.read(func(st *state) { svc, ok = st.services[serviceID] })
	if !ok || svc.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return &svc, nil
}

func (r *Repo) CountActiveServices(_ context.Context, businessID uint) (int64, error) {
	var n int64
	r.store.read(func(st *state) {
		for _, svc := range st.services {
			if svc.BusinessID == businessID && svc.Active {
				n++
			}
		}
	})
	return n, nil
}

func overlapsBlocking(st *state, ap models.Appointment, excludeID uint) bool {
	sameDay := make([]models.Appointment, 0, len(st.appointments))
	for _, other := range st.appointments {
		if other.BusinessID == ap.BusinessID && other.AppointmentDate.Equal(ap.AppointmentDate) {
			sameDay = append(sameDay, other)
		}
	}
	return domain.FindConflict(domain.SlotOf(ap), sameDay, excludeID) != nil
}

func (r *Repo) HasTimeConflict(
	_ context.Context,
	businessID uint,
	date time.Time,
	slot schedule.Interval,
	excludeID uint,
) (bool, error) {

	probe := models.Appointment{
		BusinessID:      businessID,
		AppointmentDate: date,
		StartMinute:     slot.Start,
		EndMinute:       slot.End,
	}
	var conflict bool
	r.store.read(func(st *state) { conflict = overlapsBlocking(st, probe, excludeID) })
	return conflict, nil
}

// CreateAppointment also enforces the no-overlap rule, standing in for the
// Postgres exclusion constraint.
func (r *Repo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	return r.store.write(func(st *state) error {
		if domain.Status(ap.Status).Blocks() && overlapsBlocking(st, *ap, 0) {
			return httperr.ErrConflict("time_conflict")
		}
		ap.ID = st.id()
		now := r.store.clock.Now()
		ap.CreatedAt, ap.UpdatedAt = now, now
		stored := *ap
		stored.Service = models.Service{}
		st.appointments[ap.ID] = stored
		return nil
	})
}

func (r *Repo) withService(st *state, ap models.Appointment) models.Appointment {
	ap.Service = st.services[ap.ServiceID]
	return ap
}

func (r *Repo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	var ok bool
	r.store.read(func(st *state) {
		ap, ok = st.appointments[id]
		ap = r.withService(st, ap)
	})
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (r *Repo) GetAppointmentForBusiness(ctx context.Context, id, businessID uint) (*models.Appointment, error) {
	ap, err := r.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if ap.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	ap.Service = models.Service{}
	return ap, nil
}

func (r *Repo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	return r.store.write(func(st *state) error {
		if _, ok := st.appointments[ap.ID]; !ok {
			return domain.ErrNotFound
		}
		ap.UpdatedAt = r.store.clock.Now()
		stored := *ap
		stored.Service = models.Service{}
		st.appointments[ap.ID] = stored
		return nil
	})
}

func (r *Repo) filter(keep func(ap models.Appointment) bool) []models.Appointment {
	out := []models.Appointment{}
	r.store.read(func(st *state) {
		for _, ap := range st.appointments {
			if keep(ap) {
				out = append(out, r.withService(st, ap))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AppointmentDate.Equal(out[j].AppointmentDate) {
			return out[i].AppointmentDate.Before(out[j].AppointmentDate)
		}
		return out[i].StartMinute < out[j].StartMinute
	})
	return out
}

func inPeriod(d, from, to time.Time) bool {
	return !d.Before(from) && d.Before(to)
}

func (r *Repo) ListBlockingAppointments(_ context.Context, businessID uint, date time.Time) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool {
		return ap.BusinessID == businessID && ap.AppointmentDate.Equal(date) && domain.Status(ap.Status).Blocks()
	}), nil
}

func (r *Repo) ListAppointmentsForPeriod(_ context.Context, businessID uint, from, to time.Time) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool {
		return ap.BusinessID == businessID && inPeriod(ap.AppointmentDate, from, to)
	}), nil
}

func (r *Repo) ListClientAppointments(_ context.Context, businessID uint, email string) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool {
		return ap.BusinessID == businessID && strings.EqualFold(ap.ClientEmail, email)
	}), nil
}

func (r *Repo) SearchAppointments(_ context.Context, f domain.SearchFilter) ([]models.Appointment, int64, error) {
	all := r.filter(func(ap models.Appointment) bool {
		if ap.BusinessID != f.BusinessID {
			return false
		}
		if len(f.Statuses) > 0 {
			match := false
			for _, s := range f.Statuses {
				match = match || string(s) == ap.Status
			}
			if !match {
				return false
			}
		}
		if f.Date != nil && !ap.AppointmentDate.Equal(*f.Date) {
			return false
		}
		if f.From != nil && ap.AppointmentDate.Before(*f.From) {
			return false
		}
		if f.To != nil && !ap.AppointmentDate.Before(*f.To) {
			return false
		}
		return true
	})

	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *Repo) CountBlockingInPeriod(_ context.Context, businessID uint, from, to time.Time) (int64, error) {
	n := len(r.filter(func(ap models.Appointment) bool {
		return ap.BusinessID == businessID && domain.Status(ap.Status).Blocks() && inPeriod(ap.AppointmentDate, from, to)
	}))
	return int64(n), nil
}

func (r *Repo) SumConfirmedRevenue(_ context.Context, businessID uint, from, to time.Time) (float64, error) {
	var total float64
	for _, ap := range r.filter(func(ap models.Appointment) bool {
		return ap.BusinessID == businessID && ap.Status == string(domain.StatusConfirmed) && inPeriod(ap.AppointmentDate, from, to)
	}) {
		total += ap.Service.Price
	}
	return total, nil
}

// ===============================
// Subscription repository
// ===============================

type SubscriptionRepo struct {
	store *Store
	inTx  bool
}

var _ subscription.Repository = (*SubscriptionRepo)(nil)

func (r *SubscriptionRepo) Transaction(_ context.Context, fn func(tx subscription.Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.store.transaction(func() error {
		return fn(&SubscriptionRepo{store: r.store, inTx: true})
	})
}

func (r *SubscriptionRepo) GetActive(_ context.Context, businessID uint) (*models.Subscription, error) {
	var found *models.Subscription
	r.store.read(func(st *state) {
		for _, sub := range st.subscriptions {
			if sub.BusinessID != businessID || sub.Status != string(subscription.StatusActive) {
				continue
			}
			if found == nil || sub.StartsAt.After(found.StartsAt) {
				s := sub
				found = &s
			}
		}
	})
	return found, nil
}

func (r *SubscriptionRepo) CreateSubscription(_ context.Context, sub *models.Subscription) error {
	return r.store.write(func(st *state) error {
		sub.ID = st.id()
		sub.CreatedAt = r.store.clock.Now()
		st.subscriptions[sub.ID] = *sub
		return nil
	})
}

func (r *SubscriptionRepo) UpdateSubscription(_ context.Context, sub *models.Subscription) error {
	return r.store.write(func(st *state) error {
		st.subscriptions[sub.ID] = *sub
		return nil
	})
}

func (r *SubscriptionRepo) CancelActive(_ context.Context, businessID uint, at time.Time) error {
	return r.store.write(func(st *state) error {
		for id, sub := range st.subscriptions {
			if sub.BusinessID == businessID && sub.Status == string(subscription.StatusActive) {
				sub.Status = string(subscription.StatusCanceled)
				sub.ExpiresAt = at
				st.subscriptions[id] = sub
			}
		}
		return nil
	})
}

func (r *SubscriptionRepo) CountUsage(_ context.Context, businessID uint, from, to time.Time, statuses []string) (int64, error) {
	var n int64
	r.store.read(func(st *state) {
		for _, ap := range st.appointments {
			if ap.BusinessID != businessID || !inPeriod(ap.CreatedAt, from, to) {
				continue
			}
			for _, s := range statuses {
				if ap.Status == s {
					n++
					break
				}
			}
		}
	})
	return n, nil
}
