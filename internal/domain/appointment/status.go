package appointment

import "github.com/BruksfildServices01/appointment-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusRejected    Status = "rejected"
	StatusRescheduled Status = "rescheduled"
)

// BlockingStatuses ocupam a agenda: só elas entram na detecção de conflito
// e na geração de horários.
var BlockingStatuses = []Status{StatusPending, StatusConfirmed}

// UsageStatuses contam para a cota do plano.
var UsageStatuses = []Status{StatusPending, StatusConfirmed, StatusRescheduled}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusRescheduled:
		return true
	}
	return false
}

func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}

func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, st.Valid()
}

func Strings(ss []Status) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}

// InitialStatus valida status inicial
func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Validations
// ===============================

func requirePending(current Status) error {
	if current != StatusPending {
		return httperr.ErrInvalidState("appointment_not_pending")
	}
	return nil
}

func CanConfirm(current Status) error    { return requirePending(current) }
func CanReject(current Status) error     { return requirePending(current) }
func CanReschedule(current Status) error { return requirePending(current) }

// CanCancelByClient: o cliente pode desistir enquanto o horário está reservado.
func CanCancelByClient(current Status) error {
	if !current.Blocks() {
		return httperr.ErrInvalidState("appointment_not_cancellable")
	}
	return nil
}
