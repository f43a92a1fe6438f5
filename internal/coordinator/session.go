package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// UserFailureMessage is the only failure text shown to shoppers.
const UserFailureMessage = "Unable to fetch your orders. Please try again."

// ErrLookupInProgress is returned when Submit is called while a lookup is loading.
var ErrLookupInProgress = errors.New("coordinator: lookup already in progress")

// Phase is the lifecycle state of a Session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Session holds one shopper's form: the phone being typed and the outcome of
// the last lookup. It moves Idle -> Loading -> Success|Failure and may go
// back to Loading from any phase except Loading.
type Session struct {
	orchestrator *Orchestrator
	logger       *slog.Logger

	mu      sync.Mutex
	phone   string
	phase   Phase
	result  *Result
	err     error
	message string
}

func NewSession(o *Orchestrator, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{orchestrator: o, logger: logger}
}

// SetPhone stores the formatted form of value and returns it.
func (s *Session) SetPhone(value string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phone = FormatPhoneNumber(value)
	return s.phone
}

func (s *Session) Phone() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phone
}

// CanSubmit mirrors the form's submit button: enabled once a full number is
// typed and no lookup is loading.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase != PhaseLoading && CanSubmit(s.phone)
}

// Submit runs a lookup for the current phone. On failure the session keeps
// the underlying error for diagnosis and exposes only UserFailureMessage.
func (s *Session) Submit(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	if s.phase == PhaseLoading {
		s.mu.Unlock()
		return nil, ErrLookupInProgress
	}
	s.phase = PhaseLoading
	s.err = nil
	s.message = ""
	phone := s.phone
	s.mu.Unlock()

	result, err := s.orchestrator.Lookup(ctx, phone)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.ErrorContext(ctx, "order lookup failed", "error", err)
		s.phase = PhaseFailure
		s.result = nil
		s.err = err
		s.message = UserFailureMessage
		return nil, err
	}

	s.phase = PhaseSuccess
	s.result = result
	return result, nil
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Result returns the last successful lookup, or nil.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Err returns the underlying error of the last failed lookup.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Message returns the text to display to the shopper, empty unless failed.
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}
