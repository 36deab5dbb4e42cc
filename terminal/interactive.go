// Package terminal runs the interactive task view on a tcell screen.
//
// The shell converts terminal cells to logical coordinates, routes mouse
// and key events to an editor.Controller and repaints the scene after
// every event. It owns the context menu and the label prompt; everything
// else lives in the editor.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"taskgrapher/canvas"
	"taskgrapher/config"
	"taskgrapher/editor"
	"taskgrapher/geometry"
	"taskgrapher/task"
)

// Mode is the input mode of the shell.
type Mode int

const (
	ModeCanvas Mode = iota // Pointer drives drag, pan and zoom
	ModeMenu               // Context menu open
	ModePrompt             // Typing a label for a new child
)

// String returns the mode name for display
func (m Mode) String() string {
	switch m {
	case ModeCanvas:
		return "CANVAS"
	case ModeMenu:
		return "MENU"
	case ModePrompt:
		return "LABEL"
	default:
		return "UNKNOWN"
	}
}

// Shell is the interactive terminal front end.
type Shell struct {
	screen tcell.Screen
	scene  *canvas.Scene
	ctrl   *editor.Controller
	logger *slog.Logger

	cellW, cellH float64
	styles       styles
	checks       bool

	mode     Mode
	buttons  tcell.ButtonMask
	menuItem int
	target   *task.Node
	prompt   []rune
	status   string
}

// Option configures a Shell.
type Option func(*Shell)

// WithCellSize sets how many logical units one terminal cell covers.
func WithCellSize(w, h float64) Option {
	return func(s *Shell) {
		if w > 0 && h > 0 {
			s.cellW, s.cellH = w, h
		}
	}
}

// WithPalette sets the colours used for markers, labels, edges and the
// drag selection.
func WithPalette(p config.Palette) Option {
	return func(s *Shell) { s.styles = newStyles(p) }
}

// WithLogger sets the shell's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithChecks runs the editor's invariant check after every structural
// edit and logs any violation.
func WithChecks(on bool) Option {
	return func(s *Shell) { s.checks = on }
}

// NewShell creates a shell drawing scene on screen. The screen must be
// initialised by the caller.
func NewShell(screen tcell.Screen, scene *canvas.Scene, ctrl *editor.Controller, opts ...Option) *Shell {
	palette, _ := config.Default().Theme.Palette()
	s := &Shell{
		screen: screen,
		scene:  scene,
		ctrl:   ctrl,
		logger: slog.New(slog.DiscardHandler),
		cellW:  10,
		cellH:  20,
		styles: newStyles(palette),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the current input mode.
func (s *Shell) Mode() Mode { return s.mode }

// Status returns the last status message.
func (s *Shell) Status() string { return s.status }

// Run enables the mouse, draws, and processes events until the user quits
// or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	s.screen.EnableMouse()
	defer s.screen.DisableMouse()

	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	s.Draw()
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return nil
		}
		if s.HandleEvent(ev) {
			return nil
		}
		s.Draw()
	}
}

// HandleEvent processes one event and reports whether the user asked to
// quit.
func (s *Shell) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
	case *tcell.EventMouse:
		s.handleMouse(ev)
	case *tcell.EventKey:
		return s.handleKey(ev)
	}
	return false
}

// toLogical returns the logical point at the centre of cell (x, y).
func (s *Shell) toLogical(x, y int) geometry.Point {
	return geometry.Pt((float64(x)+0.5)*s.cellW, (float64(y)+0.5)*s.cellH)
}

// toCell returns the cell covering logical point p.
func (s *Shell) toCell(p geometry.Point) (int, int) {
	return int(math.Floor(p.X / s.cellW)), int(math.Floor(p.Y / s.cellH))
}

var buttonMap = []struct {
	mask tcell.ButtonMask
	btn  editor.Button
}{
	{tcell.ButtonPrimary, editor.ButtonPrimary},
	{tcell.ButtonMiddle, editor.ButtonPan},
	{tcell.ButtonSecondary, editor.ButtonSecondary},
}

func (s *Shell) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := s.toLogical(x, y)
	btns := ev.Buttons()

	if btns&(tcell.WheelUp|tcell.WheelDown) != 0 {
		if s.mode != ModePrompt {
			s.zoom(p, btns&tcell.WheelUp != 0)
		}
		return
	}

	btns &= tcell.ButtonPrimary | tcell.ButtonMiddle | tcell.ButtonSecondary
	released := s.buttons &^ btns

	// While typing a label presses are ignored but releases still end
	// whatever gesture the button started.
	if s.mode == ModePrompt {
		s.buttons &^= released
		s.release(released, p)
		return
	}

	pressed := btns &^ s.buttons
	s.buttons = btns

	s.release(released, p)
	if pressed == 0 && released == 0 {
		s.ctrl.PointerMove(p)
	}
	for _, m := range buttonMap {
		if pressed&m.mask != 0 {
			s.ctrl.PointerDown(m.btn, p)
		}
	}

	if s.ctrl.Menu() != nil {
		if s.mode != ModeMenu {
			s.mode = ModeMenu
			s.menuItem = 0
		}
	} else if s.mode == ModeMenu {
		s.mode = ModeCanvas
	}
}

func (s *Shell) release(released tcell.ButtonMask, p geometry.Point) {
	for _, m := range buttonMap {
		if released&m.mask != 0 {
			s.ctrl.PointerUp(m.btn, p)
		}
	}
}

func (s *Shell) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	switch s.mode {
	case ModeMenu:
		s.handleMenuMode(ev)
	case ModePrompt:
		s.handlePromptMode(ev)
	default:
		return s.handleCanvasMode(ev)
	}
	return false
}

func (s *Shell) handleCanvasMode(ev *tcell.EventKey) bool {
	panX, panY := 4*s.cellW, 2*s.cellH
	switch ev.Key() {
	case tcell.KeyEscape:
		return true
	case tcell.KeyLeft:
		s.ctrl.Editor().Pan(geometry.Pt(-panX, 0))
	case tcell.KeyRight:
		s.ctrl.Editor().Pan(geometry.Pt(panX, 0))
	case tcell.KeyUp:
		s.ctrl.Editor().Pan(geometry.Pt(0, -panY))
	case tcell.KeyDown:
		s.ctrl.Editor().Pan(geometry.Pt(0, panY))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case '+', '=':
			s.zoom(s.ctrl.Pointer(), true)
		case '-':
			s.zoom(s.ctrl.Pointer(), false)
		case 'm':
			if s.ctrl.OpenMenu(s.ctrl.Pointer()) {
				s.mode = ModeMenu
				s.menuItem = 0
			}
		}
	}
	return false
}

func (s *Shell) handleMenuMode(ev *tcell.EventKey) {
	menu := s.ctrl.Menu()
	if menu == nil {
		s.mode = ModeCanvas
		return
	}
	action := editor.Action(-1)
	switch ev.Key() {
	case tcell.KeyEscape:
		s.ctrl.CloseMenu()
		s.mode = ModeCanvas
	case tcell.KeyUp:
		s.menuItem = (s.menuItem + len(menu.Items) - 1) % len(menu.Items)
	case tcell.KeyDown:
		s.menuItem = (s.menuItem + 1) % len(menu.Items)
	case tcell.KeyEnter:
		action = menu.Items[s.menuItem]
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a':
			action = editor.ActionAddChild
		case 'd':
			action = editor.ActionDeleteSubtree
		}
	}

	switch action {
	case editor.ActionAddChild:
		s.target = menu.Target
		s.prompt = s.prompt[:0]
		s.mode = ModePrompt
	case editor.ActionDeleteSubtree:
		removed := s.ctrl.DeleteSubtree(menu.Target)
		s.status = fmt.Sprintf("deleted %d task(s)", len(removed))
		s.mode = ModeCanvas
		s.afterEdit()
	}
}

func (s *Shell) handlePromptMode(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.ctrl.CloseMenu()
		s.target = nil
		s.mode = ModeCanvas
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(s.prompt) > 0 {
			s.prompt = s.prompt[:len(s.prompt)-1]
		}
	case tcell.KeyEnter:
		s.commitPrompt()
	case tcell.KeyRune:
		s.prompt = append(s.prompt, ev.Rune())
	}
}

func (s *Shell) commitPrompt() {
	target := s.target
	s.target = nil
	s.mode = ModeCanvas

	child, ok, err := s.ctrl.AddChild(target, string(s.prompt))
	switch {
	case err != nil:
		s.status = err.Error()
	case !ok:
		s.status = fmt.Sprintf("%q already has %d children", target.Value(), target.MaxChildren())
	default:
		s.status = fmt.Sprintf("added %q", child.Value())
		s.afterEdit()
	}
}

func (s *Shell) zoom(p geometry.Point, in bool) {
	var err error
	if in {
		err = s.ctrl.ZoomIn(p)
	} else {
		err = s.ctrl.ZoomOut(p)
	}
	if err != nil {
		s.status = err.Error()
	}
}

func (s *Shell) afterEdit() {
	if !s.checks {
		return
	}
	if err := s.ctrl.Editor().Check(); err != nil {
		s.logger.Error("invariant check failed", "err", err)
	}
}

// Draw repaints the whole screen.
func (s *Shell) Draw() {
	s.screen.Clear()
	w, h := s.screen.Size()
	if w <= 0 || h <= 1 {
		s.screen.Show()
		return
	}

	m, err := canvas.NewMatrixCanvas(w, h-1)
	if err == nil {
		s.scene.Rasterize(m, s.cellW, s.cellH)
		for y := 0; y < h-1; y++ {
			for x := 0; x < w; x++ {
				cell := m.Get(x, y)
				if !cell.Painted || cell.Rune == 0 {
					continue
				}
				s.screen.SetContent(x, y, cell.Rune, nil, s.styles.cell(cell))
			}
		}
	}

	if s.mode == ModeMenu {
		s.drawMenu()
	}
	s.showStatusLine(w, h-1)
	s.screen.Show()
}

func (s *Shell) drawMenu() {
	menu := s.ctrl.Menu()
	if menu == nil {
		return
	}
	x, y := s.toCell(menu.At)
	width := 0
	for _, it := range menu.Items {
		width = max(width, runewidth.StringWidth(it.String())+2)
	}
	for i, it := range menu.Items {
		style := s.styles.menu
		if i == s.menuItem {
			style = style.Reverse(true)
		}
		s.drawText(x+1, y+i, runewidth.FillRight(" "+it.String(), width), style)
	}
}

func (s *Shell) showStatusLine(w, y int) {
	var line string
	switch s.mode {
	case ModePrompt:
		line = fmt.Sprintf("Label for child of %q: %s│", s.target.Value(), string(s.prompt))
	default:
		ed := s.ctrl.Editor()
		line = fmt.Sprintf("Tasks: %d | Edges: %d | Zoom: %.2f | Mode: %s",
			ed.Registered(), ed.EdgeCount(), ed.Scale(), s.mode)
		if g := s.ctrl.Gesture(); g != editor.GestureIdle {
			line += " | " + g.String()
		}
		if s.status != "" {
			line += " | " + s.status
		}
	}
	s.drawText(0, y, runewidth.Truncate(line, w, "…"), s.styles.status)
}

func (s *Shell) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
