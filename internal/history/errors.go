package history

import (
	"errors"
	"fmt"
)

// Kind classifies history failures and data-quality findings. The values are
// the wire codes returned to API clients.
type Kind string

const (
	// KindHistoryNotFound: the member id does not resolve to any member.
	KindHistoryNotFound Kind = "HISTORICO_NOT_FOUND"
	// KindInvalidPeriod: start after end, or an end date in the future.
	KindInvalidPeriod Kind = "PERIODO_INVALIDO"
	// KindNoDataInPeriod: the member exists but no source has records in the period.
	KindNoDataInPeriod Kind = "SEM_DADOS_PERIODO"
	// KindMissingData: a cross-reference (instructor, exercise, plan) is gone.
	KindMissingData Kind = "DADOS_AUSENTES"
	// KindDataIntegrity: two sources disagree (e.g. payment for someone else's enrollment).
	KindDataIntegrity Kind = "INTEGRIDADE_DADOS"
	// KindCorruptData: a record breaks basic shape rules (e.g. negative weight).
	KindCorruptData Kind = "DADOS_CORRUPTOS"
	// KindAggregation: unexpected failure while building; aborts the dossier.
	KindAggregation Kind = "ERRO_AGREGACAO"
)

// Error is the error type returned by the aggregation engine.
type Error struct {
	Kind   Kind
	Op     string // stage that failed, e.g. "ResolveMember"
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so callers can write
// errors.Is(err, history.ErrInvalidPeriod).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrHistoryNotFound = &Error{Kind: KindHistoryNotFound}
	ErrInvalidPeriod   = &Error{Kind: KindInvalidPeriod}
	ErrNoDataInPeriod  = &Error{Kind: KindNoDataInPeriod}
	ErrMissingData     = &Error{Kind: KindMissingData}
	ErrDataIntegrity   = &Error{Kind: KindDataIntegrity}
	ErrCorruptData     = &Error{Kind: KindCorruptData}
	ErrAggregation     = &Error{Kind: KindAggregation}
)

// KindOf returns the Kind carried by err, or "" when err is not a history error.
func KindOf(err error) Kind {
	var he *Error
	if errors.As(err, &he) {
		return he.Kind
	}
	return ""
}

func invalidPeriod(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidPeriod, Op: "ValidatePeriod", Detail: fmt.Sprintf(format, args...)}
}
