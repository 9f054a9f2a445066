package httperr

import "errors"

// Kind classifies a BusinessError; the HTTP layer maps it to a status.
type Kind string

const (
	KindValidation          Kind = "validation"
	KindNotFound            Kind = "not_found"
	KindOutOfHours          Kind = "out_of_hours"
	KindConflict            Kind = "conflict"
	KindNoSubscription      Kind = "no_subscription"
	KindSubscriptionExpired Kind = "subscription_expired"
	KindQuotaExceeded       Kind = "quota_exceeded"
	KindInvalidState        Kind = "invalid_state"
	KindForbidden           Kind = "forbidden"
)

type BusinessError struct {
	Kind Kind
	Code string
	// Details vai no corpo da resposta (ex.: uso da cota).
	Details any
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(kind Kind, code string) error {
	return BusinessError{Kind: kind, Code: code}
}

func ErrValidation(code string) error   { return ErrBusiness(KindValidation, code) }
func ErrNotFound(code string) error     { return ErrBusiness(KindNotFound, code) }
func ErrOutOfHours(code string) error   { return ErrBusiness(KindOutOfHours, code) }
func ErrConflict(code string) error     { return ErrBusiness(KindConflict, code) }
func ErrInvalidState(code string) error { return ErrBusiness(KindInvalidState, code) }
func ErrForbidden(code string) error    { return ErrBusiness(KindForbidden, code) }

func ErrNoActiveSubscription() error {
	return ErrBusiness(KindNoSubscription, "no_active_subscription")
}

func ErrSubscriptionExpired() error {
	return ErrBusiness(KindSubscriptionExpired, "subscription_expired")
}

func ErrQuotaExceeded(details any) error {
	return BusinessError{Kind: KindQuotaExceeded, Code: "monthly_limit_reached", Details: details}
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return BusinessError{}, false
}

func IsBusiness(err error, code string) bool {
	be, ok := AsBusiness(err)
	return ok && be.Code == code
}

func IsKind(err error, kind Kind) bool {
	be, ok := AsBusiness(err)
	return ok && be.Kind == kind
}
