package game

// State is the current phase of a session.
type State int

const (
	StateMenu     State = iota // Main menu with PLAY / QUIT
	StatePlaying               // Active gameplay, including the won/lost overlays
	StateShutdown              // Server is shutting down
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Menu buttons, in display order.
const (
	buttonPlay = iota
	buttonQuit
)
