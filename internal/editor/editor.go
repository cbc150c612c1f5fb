package editor

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/dmitrijs2005/polymap/internal/common"
	"github.com/dmitrijs2005/polymap/internal/geo"
	"github.com/dmitrijs2005/polymap/internal/logging"
	"github.com/dmitrijs2005/polymap/internal/metrics"
	"github.com/dmitrijs2005/polymap/internal/models"
	"github.com/dmitrijs2005/polymap/internal/store"
	"github.com/google/uuid"
)

type State int

const (
	Idle State = iota
	Drawing
	DeleteArmed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case DeleteArmed:
		return "delete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session reports the account currently logged in.
type Session interface {
	CheckAuth(ctx context.Context) (*models.Account, bool)
}

// NamePrompt asks for the name of a polygon about to be committed. It
// receives the name used when the answer is blank.
type NamePrompt func(defaultName string) string

// ColorFunc returns the display color of a new polygon.
type ColorFunc func() string

// RandomColor returns a random "#rrggbb" color.
func RandomColor() string {
	return fmt.Sprintf("#%06x", rand.IntN(0x1000000))
}

// DefaultName is the name given to the n-th polygon (1-based) when the
// prompt answer is blank.
func DefaultName(n int) string {
	return fmt.Sprintf("Polygon %d", n)
}

type Editor struct {
	store   store.RecordStore
	session Session
	log     logging.Logger
	metrics *metrics.Metrics
	prompt  NamePrompt
	color   ColorFunc
	newID   func() string

	open     bool
	owner    string
	polygons []models.Polygon
	draft    []models.Point
	state    State
}

type Option func(*Editor)

func WithNamePrompt(p NamePrompt) Option {
	return func(e *Editor) { e.prompt = p }
}

func WithColor(c ColorFunc) Option {
	return func(e *Editor) { e.color = c }
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(e *Editor) { e.metrics = mt }
}

// WithIDs replaces the polygon id generator.
func WithIDs(newID func() string) Option {
	return func(e *Editor) { e.newID = newID }
}

func New(rs store.RecordStore, s Session, log logging.Logger, opts ...Option) *Editor {
	e := &Editor{
		store:   rs,
		session: s,
		log:     log.With("component", "editor"),
		prompt:  func(string) string { return "" },
		color:   RandomColor,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open binds the editor to the active account and loads its polygons. It
// reports false and leaves the editor closed when nobody is logged in.
func (e *Editor) Open(ctx context.Context) bool {
	e.Close()

	acc, ok := e.session.CheckAuth(ctx)
	if !ok {
		return false
	}

	e.open = true
	e.owner = acc.TaxID
	e.polygons = make([]models.Polygon, 0, len(acc.Polygons))
	for _, p := range acc.Polygons {
		e.polygons = append(e.polygons, p.Clone())
	}
	e.log.Debug(ctx, "editor opened", "cpf", e.owner, "polygons", len(e.polygons))
	return true
}

// Close drops the draft, the delete mode and the loaded polygons.
func (e *Editor) Close() {
	e.open = false
	e.owner = ""
	e.polygons = nil
	e.draft = nil
	e.state = Idle
	e.metrics.DraftPoints(0)
}

// StartPolygon enters Drawing with an empty draft. It is ignored unless the
// editor is Idle.
func (e *Editor) StartPolygon() bool {
	if !e.open || e.state != Idle {
		return false
	}
	e.state = Drawing
	e.draft = nil
	e.metrics.DraftPoints(0)
	return true
}

// AddPoint appends p to the draft while Drawing. Non-finite points are
// refused.
func (e *Editor) AddPoint(p models.Point) bool {
	if !e.open || e.state != Drawing || !p.Finite() {
		return false
	}
	e.draft = append(e.draft, p)
	e.metrics.DraftPoints(len(e.draft))
	return true
}

// UndoPoint removes the last draft point.
func (e *Editor) UndoPoint() bool {
	if !e.open || e.state != Drawing || len(e.draft) == 0 {
		return false
	}
	e.draft = e.draft[:len(e.draft)-1]
	e.metrics.DraftPoints(len(e.draft))
	return true
}

// CancelPolygon discards the draft and returns to Idle.
func (e *Editor) CancelPolygon() bool {
	if !e.open || e.state != Drawing {
		return false
	}
	e.draft = nil
	e.state = Idle
	e.metrics.DraftPoints(0)
	return true
}

func (e *Editor) CanFinish() bool {
	return e.open && e.state == Drawing && len(e.draft) >= models.MinPolygonPoints
}

// Finish commits the draft as a new polygon and persists the owner's list.
// It reports false without side effects when CanFinish is false. When the
// write fails the polygon is dropped again, the draft is kept and the error
// wraps common.ErrInternal.
func (e *Editor) Finish(ctx context.Context) (bool, error) {
	if !e.CanFinish() {
		return false, nil
	}

	def := DefaultName(len(e.polygons) + 1)
	name := strings.TrimSpace(e.prompt(def))
	if name == "" {
		name = def
	}

	poly := models.Polygon{
		ID:     e.newID(),
		Points: append([]models.Point(nil), e.draft...),
		Color:  e.color(),
		Name:   name,
	}

	e.polygons = append(e.polygons, poly)
	if err := e.persist(ctx); err != nil {
		e.polygons = e.polygons[:len(e.polygons)-1]
		e.log.Error(ctx, "polygon not saved", "cpf", e.owner, "name", name, "error", err)
		return false, fmt.Errorf("%w: save polygon: %v", common.ErrInternal, err)
	}

	e.draft = nil
	e.state = Idle
	e.metrics.DraftPoints(0)
	e.metrics.PolygonCommitted()
	e.log.Info(ctx, "polygon committed", "cpf", e.owner, "id", poly.ID, "name", name, "points", len(poly.Points))
	return true, nil
}

// ToggleDeleteMode switches between Idle and DeleteArmed. Entering delete
// mode needs at least one polygon; it is ignored while Drawing.
func (e *Editor) ToggleDeleteMode() bool {
	if !e.open {
		return false
	}
	switch e.state {
	case Idle:
		if len(e.polygons) == 0 {
			return false
		}
		e.state = DeleteArmed
	case DeleteArmed:
		e.state = Idle
	default:
		return false
	}
	return true
}

// Select removes the polygon at index while DeleteArmed and returns to Idle.
// An index out of range is ignored. When the write fails the polygon is
// restored, delete mode stays armed and the error wraps common.ErrInternal.
func (e *Editor) Select(ctx context.Context, index int) (bool, error) {
	if !e.open || e.state != DeleteArmed || index < 0 || index >= len(e.polygons) {
		return false, nil
	}

	prev := e.polygons
	removed := prev[index]
	next := make([]models.Polygon, 0, len(prev)-1)
	next = append(next, prev[:index]...)
	next = append(next, prev[index+1:]...)

	e.polygons = next
	if err := e.persist(ctx); err != nil {
		e.polygons = prev
		e.log.Error(ctx, "polygon not deleted", "cpf", e.owner, "name", removed.Name, "error", err)
		return false, fmt.Errorf("%w: delete polygon: %v", common.ErrInternal, err)
	}

	e.state = Idle
	e.metrics.PolygonDeleted()
	e.log.Info(ctx, "polygon deleted", "cpf", e.owner, "id", removed.ID, "name", removed.Name)
	return true, nil
}

// SelectAt deletes the top-most polygon containing p, if any.
func (e *Editor) SelectAt(ctx context.Context, p models.Point) (bool, error) {
	if !e.open || e.state != DeleteArmed {
		return false, nil
	}
	i := geo.TopmostContaining(e.polygons, p)
	if i < 0 {
		return false, nil
	}
	return e.Select(ctx, i)
}

func (e *Editor) persist(ctx context.Context) error {
	return store.UpdatePolygons(ctx, e.store, e.owner, e.polygons)
}

func (e *Editor) IsOpen() bool { return e.open }

func (e *Editor) State() State { return e.state }

func (e *Editor) Drawing() bool { return e.state == Drawing }

func (e *Editor) DeleteArmed() bool { return e.state == DeleteArmed }

// Owner returns the tax id of the account being edited.
func (e *Editor) Owner() string { return e.owner }

// Draft returns a copy of the in-progress points.
func (e *Editor) Draft() []models.Point {
	return append([]models.Point(nil), e.draft...)
}

// Polygons returns a copy of the committed polygons in drawing order.
func (e *Editor) Polygons() []models.Polygon {
	out := make([]models.Polygon, len(e.polygons))
	for i, p := range e.polygons {
		out[i] = p.Clone()
	}
	return out
}
