package tui

import (
	"errors"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"pkt.systems/pslog"

	"github.com/jask/teasheet/sheet"
)

// defaultCellUnit maps one terminal row to engine points. Sixteen
// points per row keeps the engine's velocity thresholds and duration
// formula meaningful at terminal sample rates.
const defaultCellUnit = 16.0

// Option configures a Model at construction.
type Option func(*Model)

// WithSnapSizes sets the sizes the sheet snaps to.
func WithSnapSizes(sizes ...sheet.Size) Option {
	return func(m *Model) { m.snapSizes = sizes }
}

// WithInitialSnapIndex opens the sheet at the i-th snap entry
// (ascending by resolved height) instead of the smallest.
func WithInitialSnapIndex(i int) Option {
	return func(m *Model) { m.initialIndex = i }
}

// WithEdge anchors the sheet to the given host edge.
func WithEdge(e sheet.Edge) Option {
	return func(m *Model) { m.edge = e }
}

// WithTitle adds a title line to the sheet chrome.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithoutHandle hides the drag handle.
func WithoutHandle() Option {
	return func(m *Model) { m.showHandle = false }
}

// WithBarrierDismiss controls whether a press outside the sheet
// dismisses it. Enabled by default.
func WithBarrierDismiss(enabled bool) Option {
	return func(m *Model) { m.barrierDismiss = enabled }
}

// WithDragDisabled turns off drag resizing and drag dismissal; the
// programmatic and keyboard paths keep working.
func WithDragDisabled() Option {
	return func(m *Model) { m.dragEnabled = false }
}

// WithCellUnit overrides the points-per-row mapping.
func WithCellUnit(points float64) Option {
	return func(m *Model) {
		if points > 0 {
			m.cellUnit = points
		}
	}
}

// WithInsets reserves host rows at the top and bottom edges, such as a
// host status bar the sheet must not cover.
func WithInsets(topRows, bottomRows int) Option {
	return func(m *Model) { m.topInset, m.bottomInset = topRows, bottomRows }
}

// WithTapRegions declares interactive controls, in engine points, whose
// presses the drag recognizer must leave alone.
func WithTapRegions(regions ...sheet.Rect) Option {
	return func(m *Model) { m.tapRegions = regions }
}

// WithConfig overrides the engine's release tuning.
func WithConfig(cfg sheet.Config) Option {
	return func(m *Model) { m.cfg = cfg }
}

// WithLogger routes gesture and decision logs to log. Output must never
// share the terminal with the UI; hand it a file-backed logger.
func WithLogger(log pslog.Logger) Option {
	return func(m *Model) { m.log = log }
}

// Model presents child content in a draggable, resizable sheet over a
// host view. The host forwards every message to Update and composites
// the sheet onto its own render with Overlay; DismissedMsg tells the
// host to drop the sheet.
type Model struct {
	id  string
	log pslog.Logger

	ctrl         *sheet.Controller
	snapSizes    []sheet.Size
	initialIndex int
	edge         sheet.Edge
	cfg          sheet.Config

	title          string
	showHandle     bool
	barrierDismiss bool
	dragEnabled    bool
	cellUnit       float64
	topInset       int
	bottomInset    int
	tapRegions     []sheet.Rect

	keys     keyMap
	viewport viewport.Model

	width  int
	height int

	// Gesture bookkeeping between mouse press and release.
	pressed    bool
	claimed    bool
	active     bool
	pressPoint sheet.Point
	track      velocityTracker

	frame      sheet.Frame
	anim       animation
	outcome    *sheet.Outcome
	dismissing bool
	done       bool
}

// New builds a sheet presenting content. Content is required: a sheet
// without a child is a construction error, not a deferred failure.
func New(content string, opts ...Option) (Model, error) {
	if strings.TrimSpace(content) == "" {
		return Model{}, errors.New("teasheet: sheet requires child content")
	}
	m := Model{
		id:             uuid.NewString(),
		log:            pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true}),
		showHandle:     true,
		barrierDismiss: true,
		dragEnabled:    true,
		cellUnit:       defaultCellUnit,
		keys:           defaultKeyMap(),
		width:          100,
		height:         32,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.ctrl = sheet.NewController(m.metrics(), m.cfg, m.snapSizes...)
	if i := m.initialIndex; i > 0 && i < m.ctrl.Snaps().Len() {
		size, _ := m.ctrl.Snaps().At(i)
		if o, ok := m.ctrl.ResizeTo(size, false); ok {
			m.ctrl.CommitSettle(o)
		}
	}
	m.frame = sheet.Frame{Height: m.ctrl.State().Actual}

	m.viewport = viewport.New(m.width-2, 0)
	m.viewport.SetContent(content)
	m.layoutViewport()
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }

// ID identifies this sheet instance in messages and logs.
func (m Model) ID() string { return m.id }

// Dragging reports whether a drag gesture currently owns the sheet.
func (m Model) Dragging() bool { return m.ctrl.Dragging() }

// Height is the sheet height currently rendered, in points.
func (m Model) Height() float64 { return m.frame.Height }

// Dismissed reports whether the sheet has fully dismissed.
func (m Model) Dismissed() bool { return m.done }

// SetContent replaces the child content.
func (m *Model) SetContent(content string) {
	m.viewport.SetContent(content)
}

// ResizeTo commits a new size programmatically, bypassing gesture
// logic. Rejected while a drag is active.
func (m Model) ResizeTo(size sheet.Size, animated bool) (Model, tea.Cmd) {
	o, ok := m.ctrl.ResizeTo(size, animated)
	if !ok {
		return m, nil
	}
	return m.applyOutcome(o, time.Now())
}

// SetSnapSizes replaces the snap set and resizes to its smallest
// entry. Empty lists are ignored; rejected while a drag is active.
func (m Model) SetSnapSizes(animated bool, sizes ...sheet.Size) (Model, tea.Cmd) {
	o, ok := m.ctrl.SetSnapSizes(animated, sizes...)
	if !ok {
		return m, nil
	}
	return m.applyOutcome(o, time.Now())
}

// Dismiss closes the sheet programmatically.
func (m Model) Dismiss() (Model, tea.Cmd) {
	o, ok := m.ctrl.Dismiss()
	if !ok {
		return m, nil
	}
	return m.applyOutcome(o, time.Now())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil
	case tea.MouseMsg:
		return m.handleMouse(msg, time.Now())
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		return m.handleTick(msg)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width, m.height = msg.Width, msg.Height
	m.ctrl.SetMetrics(m.metrics())
	if !m.ctrl.Dragging() && m.outcome == nil {
		// Re-settle at the committed size under the new geometry.
		h := m.ctrl.State().Preferred.Resolve(m.ctrl.Metrics())
		m.ctrl.SyncHeight(h)
		m.frame = sheet.Frame{Height: h}
	}
	m.layoutViewport()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		if o, ok := m.ctrl.Dismiss(); ok {
			return m.applyOutcome(o, time.Now())
		}
		return m, nil
	case key.Matches(msg, m.keys.Grow):
		return m.cycleSnap(1)
	case key.Matches(msg, m.keys.Shrink):
		return m.cycleSnap(-1)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// cycleSnap moves the committed size one snap entry in the given
// direction, the keyboard equivalent of a resize drag.
func (m Model) cycleSnap(dir int) (Model, tea.Cmd) {
	snaps := m.ctrl.Snaps()
	i := snaps.Index(m.ctrl.State().Preferred)
	if i < 0 {
		i = 0
	}
	i += dir
	if i < 0 || i >= snaps.Len() {
		return m, nil
	}
	size, _ := snaps.At(i)
	o, ok := m.ctrl.ResizeTo(size, true)
	if !ok {
		return m, nil
	}
	return m.applyOutcome(o, time.Now())
}

func (m Model) handleMouse(msg tea.MouseMsg, now time.Time) (Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.LineUp(1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.viewport.LineDown(1)
		return m, nil
	}

	pt := sheet.Point{X: float64(msg.X) * m.cellUnit, Y: float64(msg.Y) * m.cellUnit}
	switch msg.Action {
	case tea.MouseActionPress:
		return m.handlePress(msg, pt, now)
	case tea.MouseActionMotion:
		return m.handleMotion(pt, now), nil
	case tea.MouseActionRelease:
		return m.handleRelease(pt, now)
	}
	return m, nil
}

func (m Model) handlePress(msg tea.MouseMsg, pt sheet.Point, now time.Time) (Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft || m.dismissing {
		return m, nil
	}
	top, rows := m.sheetRect()
	if msg.Y < top || msg.Y >= top+rows {
		if m.barrierDismiss {
			if o, ok := m.ctrl.Dismiss(); ok {
				m.log.Debug("barrier dismiss", "sheet", m.id)
				return m.applyOutcome(o, now)
			}
		}
		return m, nil
	}
	for _, r := range m.tapRegions {
		if r.Contains(pt) {
			// An interactive control owns this press; the drag must not
			// starve it.
			return m, nil
		}
	}
	if !m.dragEnabled {
		return m, nil
	}
	m.pressed = true
	m.claimed = false
	m.active = false
	m.pressPoint = pt
	m.track.reset()
	m.track.observe(now, pt)
	return m, nil
}

func (m Model) handleMotion(pt sheet.Point, now time.Time) Model {
	if !m.pressed {
		return m
	}
	m.track.observe(now, pt)
	if !m.claimed {
		// One-shot ownership decision at recognition time; it does not
		// change for the rest of the gesture.
		m.claimed = true
		act := sheet.Activation{
			Touch:      m.pressPoint,
			Velocity:   m.track.velocity(),
			Scroll:     m.scrollState(),
			Edge:       m.edge,
			Height:     m.frame.Height,
			MaxSnap:    m.ctrl.Snaps().Max(),
			FullHeight: sheet.Full().Resolve(m.ctrl.Metrics()),
		}
		if !sheet.ShouldActivate(act) {
			m.log.Debug("drag not activated", "sheet", m.id, "scroll_offset", act.Scroll.Offset)
			m.pressed = false
			return m
		}
		if m.anim.active {
			// Interrupt the settle mid-flight and anchor at the height
			// on screen, not the animation target.
			h, _ := m.anim.heightAt(now)
			m.ctrl.SyncHeight(h)
			m.anim.stop()
			m.outcome = nil
		}
		m.active = true
		if f, _ := m.ctrl.Update(sheet.Sample{Phase: sheet.PhaseBegan, Translation: m.pressPoint}); f != nil {
			m.frame = *f
		}
	}
	if m.active {
		if f, _ := m.ctrl.Update(sheet.Sample{Phase: sheet.PhaseChanged, Translation: pt}); f != nil {
			m.frame = *f
		}
		m.layoutViewport()
	}
	return m
}

func (m Model) handleRelease(pt sheet.Point, now time.Time) (Model, tea.Cmd) {
	if !m.pressed {
		return m, nil
	}
	m.pressed = false
	if !m.active {
		return m, nil
	}
	m.active = false
	m.track.observe(now, pt)
	_, o := m.ctrl.Update(sheet.Sample{
		Phase:       sheet.PhaseEnded,
		Translation: pt,
		Velocity:    m.track.velocity(),
	})
	if o == nil {
		return m, nil
	}
	return m.applyOutcome(*o, now)
}

// applyOutcome starts animating toward a terminal decision and emits
// the lifecycle messages the host listens for.
func (m Model) applyOutcome(o sheet.Outcome, now time.Time) (Model, tea.Cmd) {
	m.log.Debug("sheet outcome",
		"sheet", m.id,
		"kind", o.Kind.String(),
		"target", o.Target.String(),
		"height", o.Height,
		"duration", o.Duration,
	)
	m.outcome = &o
	m.anim.begin(m.frame.Height, o, now)
	m.frame.Offset = 0

	if o.Kind == sheet.OutcomeDismiss {
		m.dismissing = true
		will := func() tea.Msg { return WillDismissMsg{ID: m.id} }
		if o.Duration <= 0 {
			model, cmd := m.finishAnimation(now)
			return model, tea.Batch(tea.Cmd(will), cmd)
		}
		return m, tea.Batch(tea.Cmd(will), tickCmd(m.id))
	}
	if o.Duration <= 0 {
		return m.finishAnimation(now)
	}
	return m, tickCmd(m.id)
}

func (m Model) handleTick(msg tickMsg) (Model, tea.Cmd) {
	if msg.id != m.id || m.outcome == nil {
		return m, nil
	}
	h, done := m.anim.heightAt(msg.at)
	m.frame = sheet.Frame{Height: h}
	m.ctrl.SyncHeight(h)
	m.layoutViewport()
	if !done {
		return m, tickCmd(m.id)
	}
	return m.finishAnimation(msg.at)
}

func (m Model) finishAnimation(now time.Time) (Model, tea.Cmd) {
	o := *m.outcome
	m.outcome = nil
	m.anim.stop()
	m.ctrl.CommitSettle(o)
	m.frame = sheet.Frame{Height: m.targetHeight(o)}
	m.layoutViewport()

	switch o.Kind {
	case sheet.OutcomeDismiss:
		m.done = true
		m.dismissing = false
		return m, func() tea.Msg { return DismissedMsg{ID: m.id} }
	case sheet.OutcomeSnap:
		return m, func() tea.Msg { return SnappedMsg{ID: m.id, Size: o.Target, Height: o.Height} }
	default:
		return m, nil
	}
}

func (m Model) targetHeight(o sheet.Outcome) float64 {
	if o.Kind == sheet.OutcomeDismiss {
		return 0
	}
	return o.Height
}

// ---------------------------------------------------------------------------
// Geometry
// ---------------------------------------------------------------------------

func (m Model) metrics() sheet.Metrics {
	return sheet.Metrics{
		AvailableExtent: float64(m.height) * m.cellUnit,
		TopInset:        float64(m.topInset) * m.cellUnit,
		BottomInset:     float64(m.bottomInset) * m.cellUnit,
		ChromeHeight:    float64(m.chromeRows()) * m.cellUnit,
		Edge:            m.edge,
	}
}

// chromeRows counts the fixed rows around the child content: borders,
// handle, title.
func (m Model) chromeRows() int {
	return m.chromeTopRows() + 1
}

func (m Model) chromeTopRows() int {
	rows := 1 // top border
	if m.showHandle {
		rows++
	}
	if m.title != "" {
		rows++
	}
	return rows
}

// sheetRect returns the sheet's on-screen cell band for the current
// frame: its first row and its row count.
func (m Model) sheetRect() (top, rows int) {
	rows = int(math.Round(m.frame.Height / m.cellUnit))
	if rows > m.height {
		rows = m.height
	}
	if rows < 0 {
		rows = 0
	}
	off := int(math.Round(m.frame.Offset / m.cellUnit))
	if m.edge == sheet.EdgeTop {
		return -off, rows
	}
	return m.height - rows + off, rows
}

func (m *Model) layoutViewport() {
	_, rows := m.sheetRect()
	m.viewport.Width = maxInt(0, m.width-2)
	m.viewport.Height = maxInt(0, rows-m.chromeRows())
}

// scrollState snapshots the nested viewport for gesture arbitration.
func (m Model) scrollState() sheet.ScrollState {
	top, _ := m.sheetRect()
	contentTop := top + m.chromeTopRows()
	return sheet.ScrollState{
		Offset: float64(m.viewport.YOffset) * m.cellUnit,
		Bounds: sheet.Rect{
			X:      m.cellUnit,
			Y:      float64(contentTop) * m.cellUnit,
			Width:  float64(m.viewport.Width) * m.cellUnit,
			Height: float64(m.viewport.Height) * m.cellUnit,
		},
	}
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

// View renders the sheet card alone. Hosts normally use Overlay.
func (m Model) View() string {
	if m.done {
		return ""
	}
	_, rows := m.sheetRect()
	if rows <= 0 {
		return ""
	}
	return m.renderCard(rows)
}

// Overlay composites the sheet over the host's rendered view; hosts
// call it as the last step of their own View.
func (m Model) Overlay(base string) string {
	if m.done {
		return base
	}
	top, rows := m.sheetRect()
	if rows <= 0 {
		return base
	}
	return composite(base, m.renderCard(rows), m.width, m.height, top)
}

func (m Model) renderCard(rows int) string {
	inner := make([]string, 0, 3)
	if m.showHandle {
		inner = append(inner, lipgloss.PlaceHorizontal(m.width-2, lipgloss.Center, handleStyle.Render(handleGlyphs)))
	}
	if m.title != "" {
		inner = append(inner, lipgloss.PlaceHorizontal(m.width-2, lipgloss.Center, titleStyle.Render(m.title)))
	}
	inner = append(inner, m.viewport.View())
	return cardStyle.
		Width(m.width - 2).
		Height(rows - 2).
		Render(strings.Join(inner, "\n"))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
