// Package fetch implements the refresh/in-flight/settled state machine that
// wraps one network operation.
//
// Models is a Bubble Tea style component: Update takes a message and returns
// the next state plus an optional command. The command issues the request
// through a mealdb.Performer and reports back with Response or Failure. On
// success the decoded items are emitted as an Updated message for the parent
// to consume; the parent owns normalization.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/schrockblock/recipes/internal/mealdb"
	"github.com/schrockblock/recipes/internal/neterr"
	"github.com/schrockblock/recipes/internal/recipe"
)

// Phase is the lifecycle stage of a fetch.
type Phase int

const (
	Idle Phase = iota
	InFlight
	Settled
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case InFlight:
		return "in flight"
	case Settled:
		return "settled"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Alert is a user-facing failure description.
type Alert struct {
	Code    int
	Title   string
	Message string
}

// Refresh starts a fetch unless one is already in flight.
type Refresh struct{}

// Response carries the body of a completed request.
type Response struct{ Data []byte }

// Failure carries the transport error of a failed request.
type Failure struct{ Err error }

// Updated is emitted after a response decoded successfully.
type Updated[M any] struct{ Items []M }

// DismissAlert clears the current alert.
type DismissAlert struct{}

// ErrNoItems is recorded when the unwrap step finds no item list.
var ErrNoItems = errors.New("response has no items")

// Config describes one fetch.
type Config[W, M any] struct {
	Endpoint  mealdb.Endpoint
	Performer mealdb.Performer
	Decode    func([]byte) (W, error)
	// Unwrap extracts the items from the decoded wrapper. When nil the
	// wrapper itself must be a []M.
	Unwrap  func(W) ([]M, bool)
	Context context.Context
	Logger  *slog.Logger
}

// Models is the state of one fetch. The zero value is not usable; build it
// with New.
type Models[W, M any] struct {
	cfg       Config[W, M]
	phase     Phase
	err       error
	decodeErr error
	alert     *Alert
}

// New returns an idle fetch.
func New[W, M any](cfg Config[W, M]) Models[W, M] {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return Models[W, M]{cfg: cfg}
}

// Env carries the collaborators shared by every fetch in the application.
type Env struct {
	Context   context.Context
	Performer mealdb.Performer
	Parser    *mealdb.Parser
	Logger    *slog.Logger
}

// NewRecords returns a fetch that decodes a meals wrapper from ep.
func NewRecords(env Env, ep mealdb.Endpoint) Models[mealdb.Wrapper, recipe.RawRecord] {
	parser := env.Parser
	if parser == nil {
		parser = mealdb.NewParser(nil)
	}
	return New(Config[mealdb.Wrapper, recipe.RawRecord]{
		Endpoint:  ep,
		Performer: env.Performer,
		Decode:    parser.DecodeWrapper,
		Unwrap:    mealdb.UnwrapMeals,
		Context:   env.Context,
		Logger:    env.Logger,
	})
}

func (m Models[W, M]) Phase() Phase { return m.phase }

// InFlight reports whether a request is outstanding.
func (m Models[W, M]) InFlight() bool { return m.phase == InFlight }

// Err returns the transport error of the last settled request, or nil.
func (m Models[W, M]) Err() error { return m.err }

// LastDecodeErr returns the decode failure of the last response, or nil.
func (m Models[W, M]) LastDecodeErr() error { return m.decodeErr }

// Alert returns the pending alert, or nil.
func (m Models[W, M]) Alert() *Alert { return m.alert }

func (m Models[W, M]) Endpoint() mealdb.Endpoint { return m.cfg.Endpoint }

// Update advances the state machine.
func (m Models[W, M]) Update(msg tea.Msg) (Models[W, M], tea.Cmd) {
	switch msg := msg.(type) {
	case Refresh:
		if m.phase == InFlight {
			return m, nil
		}
		m.phase = InFlight
		m.cfg.Logger.Debug("fetch started", "endpoint", m.cfg.Endpoint.String())
		return m, m.perform()

	case Response:
		m.phase = Settled
		m.err = nil
		items, err := m.decode(msg.Data)
		if err != nil {
			// The request succeeded but nothing is emitted; the previous
			// collection stays on screen.
			m.decodeErr = err
			m.cfg.Logger.Warn("response discarded",
				"endpoint", m.cfg.Endpoint.String(),
				"bytes", len(msg.Data),
				"error", err,
			)
			return m, nil
		}
		m.decodeErr = nil
		m.cfg.Logger.Debug("fetch complete", "endpoint", m.cfg.Endpoint.String(), "items", len(items))
		return m, func() tea.Msg { return Updated[M]{Items: items} }

	case Failure:
		m.phase = Settled
		m.err = msg.Err
		code := neterr.CodeOf(msg.Err)
		m.cfg.Logger.Warn("fetch failed",
			"endpoint", m.cfg.Endpoint.String(),
			"code", code,
			"error", msg.Err,
		)
		if text, ok := neterr.Classify(code); ok {
			m.alert = &Alert{Code: code, Title: neterr.AlertTitle(code), Message: text}
		}
		return m, nil

	case DismissAlert:
		m.alert = nil
		return m, nil
	}
	return m, nil
}

func (m Models[W, M]) perform() tea.Cmd {
	ctx := m.cfg.Context
	performer := m.cfg.Performer
	ep := m.cfg.Endpoint
	return func() tea.Msg {
		if performer == nil {
			return Failure{Err: &neterr.TransportError{Code: neterr.CodeUnknown, Op: ep.Path, Err: errors.New("no performer configured")}}
		}
		data, err := performer.Perform(ctx, ep)
		if err != nil {
			return Failure{Err: err}
		}
		return Response{Data: data}
	}
}

func (m Models[W, M]) decode(data []byte) ([]M, error) {
	if m.cfg.Decode == nil {
		return nil, errors.New("no decoder configured")
	}
	wrapper, err := m.cfg.Decode(data)
	if err != nil {
		return nil, err
	}
	if m.cfg.Unwrap == nil {
		items, ok := any(wrapper).([]M)
		if !ok {
			return nil, fmt.Errorf("unwrap %T: %w", wrapper, ErrNoItems)
		}
		return items, nil
	}
	items, ok := m.cfg.Unwrap(wrapper)
	if !ok {
		return nil, ErrNoItems
	}
	return items, nil
}
