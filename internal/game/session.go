package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/lobby"
	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/sound"
)

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Tuning       config.Tuning // Zero value means config.DefaultTuning
	Logger       *log.Logger
	Sound        sound.Player
	Renderer     *lipgloss.Renderer // Styles menu text; defaults to one on the output writer
	Lobby        *lobby.Lobby       // Shared across sessions; a private one is made when nil
	Name         string
	Rand         *rand.Rand

	// Zero disables the inactivity warning / disconnect.
	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration
}

func (o Options) withDefaults(w io.Writer) Options {
	if o.TermSizeFunc == nil {
		o.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if o.Tuning == (config.Tuning{}) {
		o.Tuning = config.DefaultTuning()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Sound == nil {
		o.Sound = sound.Nop{}
	}
	if o.Renderer == nil {
		o.Renderer = lipgloss.NewRenderer(w)
	}
	if o.Lobby == nil {
		o.Lobby = lobby.New()
	}
	if o.Name == "" {
		o.Name = DefaultName
	}
	if r := []rune(o.Name); len(r) > MaxNameLength {
		o.Name = string(r[:MaxNameLength])
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

// Session is one player's view of the game: menu, current game, lobby
// membership and terminal output.
type Session struct {
	opts   Options
	log    *log.Logger
	game   *Game
	handle *lobby.Handle

	state      State
	drawnState State // State the terminal was last cleared for
	running    bool

	buttons  []*object.Button
	selected int

	submitted     bool // Score of the current lost game was sent to the lobby
	wonWave       int  // Last wave logged as won
	shutdownTimer float64

	lastInput   time.Time
	isInactive  bool
	wasInactive bool

	stream *input.Stream // Set by Run; nil in tests
	canvas *draw.Canvas
	term   *draw.Terminal
}

// NewSession registers with the lobby and prepares the canvas for w.
func NewSession(w io.Writer, opts Options) *Session {
	opts = opts.withDefaults(w)

	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight,
		float64(opts.Tuning.ScreenWidth), float64(opts.Tuning.ScreenHeight))
	canvas.SetOffset(offsetCol, offsetRow)

	s := &Session{
		opts:    opts,
		log:     opts.Logger.With("player", opts.Name),
		handle:  opts.Lobby.Register(opts.Name),
		state:   StateMenu,
		running: true,
		buttons: []*object.Button{
			buttonPlay: object.NewButton("PLAY", 0, 0, PlayColor, HoverColor),
			buttonQuit: object.NewButton("QUIT", 0, 0, QuitColor, HoverColor),
		},
		lastInput:  time.Now(),
		drawnState: -1,
		canvas:     canvas,
		term:       draw.NewTerminal(w, canvas),
	}
	s.game = s.newGame()
	s.layoutButtons()
	return s
}

func (s *Session) newGame() *Game {
	s.submitted = false
	s.wonWave = 0
	return New(s.opts.Tuning, s.opts.Rand, s.opts.Sound, s.log)
}

// Close leaves the lobby.
func (s *Session) Close() {
	s.opts.Lobby.Unregister(s.handle.ID)
}

// Running reports whether the session wants more frames.
func (s *Session) Running() bool { return s.running }

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Game returns the current game.
func (s *Session) Game() *Game { return s.game }

// Selected returns the index of the highlighted menu button.
func (s *Session) Selected() int { return s.selected }

func (s *Session) setState(next State) {
	if next == s.state {
		return
	}
	s.log.Debug("state change", "from", s.state, "to", next)
	s.state = next
	input.ResetKeyInput(s.stream)
}

// Update runs one frame of session logic. now is the wall clock time of the
// frame and only drives inactivity tracking.
func (s *Session) Update(dt time.Duration, in input.Input, now time.Time) error {
	s.processLobbyEvents()
	s.trackActivity(in, now)

	if in.Quit {
		s.running = false
		return nil
	}

	s.game.UpdateBackground(dt)

	switch s.state {
	case StateMenu:
		s.updateMenu(in)
	case StatePlaying:
		return s.updatePlaying(dt, in)
	case StateShutdown:
		s.updateShutdown(dt)
	}
	return nil
}

// processLobbyEvents handles events from the lobby.
func (s *Session) processLobbyEvents() {
	for {
		select {
		case ev, ok := <-s.handle.Events:
			if !ok {
				s.running = false
				return
			}
			if ev.Type == lobby.EventShutdown && s.state != StateShutdown {
				s.setState(StateShutdown)
				s.shutdownTimer = ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// trackActivity warns and finally disconnects idle sessions.
func (s *Session) trackActivity(in input.Input, now time.Time) {
	if len(in.Pressed) > 0 {
		s.lastInput = now
		s.isInactive = false
		return
	}
	idle := now.Sub(s.lastInput)
	if d := s.opts.InactivityDisconnect; d > 0 && idle > d {
		s.log.Info("disconnecting idle session", "idle", idle)
		s.running = false
		return
	}
	if w := s.opts.InactivityWarn; w > 0 && idle > w {
		s.isInactive = true
	}
}

func (s *Session) updateMenu(in input.Input) {
	s.layoutButtons()

	if in.Tapped(input.KeyUp) {
		s.selected = (s.selected + len(s.buttons) - 1) % len(s.buttons)
	}
	if in.Tapped(input.KeyDown) {
		s.selected = (s.selected + 1) % len(s.buttons)
	}

	for _, c := range in.Clicks {
		col := c.Col - s.canvas.OffsetCol()
		row := c.Row - s.canvas.OffsetRow()
		for i, b := range s.buttons {
			if b.Contains(col, row) {
				s.selected = i
				s.activate(i)
				return
			}
		}
	}

	if in.Tapped(input.KeyEnter) || in.Tapped(input.KeySpace) {
		s.activate(s.selected)
	}
}

// activate runs the action of a menu button.
func (s *Session) activate(button int) {
	switch button {
	case buttonPlay:
		if s.game.Lost() {
			s.game = s.newGame()
		}
		s.setState(StatePlaying)
	case buttonQuit:
		s.running = false
	}
}

func (s *Session) updatePlaying(dt time.Duration, in input.Input) error {
	if in.Tapped(input.KeyEscape) {
		s.setState(StateMenu)
		return nil
	}

	g := s.game
	if g.Lost() {
		if in.Tapped(input.KeyEnter) {
			s.game = s.newGame()
			s.setState(StateMenu)
		}
		return nil
	}

	if g.Won() && in.Tapped(input.KeyEnter) {
		g.NextWave()
		input.ResetKeyInput(s.stream)
	}

	if err := g.Update(dt, in); err != nil {
		return err
	}

	switch {
	case g.Lost() && !s.submitted:
		s.submitted = true
		s.opts.Lobby.SubmitScore(s.handle.ID, g.Score)
		s.log.Info("game lost", "score", g.Score, "wave", g.Wave)
	case g.Won() && s.wonWave != g.Wave:
		s.wonWave = g.Wave
		s.log.Info("wave won", "score", g.Score, "wave", g.Wave)
	}
	return nil
}

// updateShutdown counts down to the forced disconnect.
func (s *Session) updateShutdown(dt time.Duration) {
	s.shutdownTimer -= dt.Seconds()
	if s.shutdownTimer <= 0 {
		s.running = false
	}
}

// resize handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (s *Session) resize() {
	termWidth, termHeight, err := s.opts.TermSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		s.term.Clear()
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.layoutButtons()
}

// layoutButtons centers the menu buttons on the render area.
func (s *Session) layoutButtons() {
	centerCol := s.canvas.TerminalWidth()/2 + 1
	centerRow := s.canvas.TerminalHeight() / 2
	for i, b := range s.buttons {
		b.Col = centerCol
		b.Row = centerRow + i*4
		b.Hovered = i == s.selected
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, MaxTermWidth)
	renderHeight = min(termHeight, MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
