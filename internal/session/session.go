package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/duna-ai/duna/internal/analyzer"
	"github.com/duna-ai/duna/internal/document"
	"github.com/duna-ai/duna/internal/logger"
)

// ErrBusy is returned by Submit while a previous submission is still running.
var ErrBusy = errors.New("analysis already in progress")

type Analyzer interface {
	Analyze(ctx context.Context, req *analyzer.Request) (*analyzer.Result, error)
}

// Session owns the lifecycle of analysis requests. At most one submission
// runs at a time; Submit, Reset and the internal transitions are the only
// ways its state changes.
type Session struct {
	ID string

	mu       sync.Mutex
	state    State
	composer *Composer
	client   Analyzer
	logger   *zap.Logger
}

func New(client Analyzer, composer *Composer, log *zap.Logger) *Session {
	id := uuid.NewString()

	return &Session{
		ID:       id,
		composer: composer,
		client:   client,
		logger:   logger.WithFields(log, zap.String(logger.FieldSessionID, id)),
	}
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Busy() bool {
	return s.State().Busy()
}

// Reset moves a finished session back to Idle and drops its payload.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Busy() {
		return ErrBusy
	}

	s.setLocked(State{Phase: Idle})
	return nil
}

// Submit validates the input, sends one analysis request and blocks until it
// resolves. Prior results or errors are discarded as soon as the submission
// is accepted. While another submission is running nothing is dispatched and
// ErrBusy is returned.
func (s *Session) Submit(ctx context.Context, jobDescription string, files []document.UploadedFile) (State, error) {
	if !s.begin() {
		s.logger.Warn("rejecting submission", zap.String("reason", ErrBusy.Error()))
		return s.State(), ErrBusy
	}

	req, err := s.composer.Compose(ctx, jobDescription, files)
	if err != nil {
		return s.fail(err), err
	}

	s.set(State{Phase: InFlight})

	result, err := s.client.Analyze(ctx, req)
	if err == nil && result == nil {
		err = &analyzer.TransportError{Op: "analyze", Err: errors.New("empty result")}
	}
	if err != nil {
		return s.fail(err), err
	}

	state := State{Phase: Succeeded, Result: result}
	s.set(state)
	s.logger.Info("analysis finished",
		zap.Int("candidates", result.Len()),
		zap.Int("total_candidates", result.Analytics.TotalCandidates),
	)

	return state, nil
}

func (s *Session) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Busy() {
		return false
	}

	s.setLocked(State{Phase: Validating})
	return true
}

func (s *Session) fail(err error) State {
	state := State{Phase: Failed, Message: OperatorMessage(err), Err: err}
	s.set(state)
	s.logger.Warn("analysis failed", zap.String("reason", state.Message), zap.Error(err))
	return state
}

func (s *Session) set(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(state)
}

func (s *Session) setLocked(state State) {
	from := s.state.Phase
	s.state = state
	s.logger.Debug("session transition",
		zap.Stringer("from", from),
		zap.Stringer("to", state.Phase),
	)
}

// OperatorMessage returns the text to show for a failed submission.
func OperatorMessage(err error) string {
	var described interface{ OperatorMessage() string }
	if errors.As(err, &described) {
		return described.OperatorMessage()
	}
	return analyzer.ConnectivityMessage
}
