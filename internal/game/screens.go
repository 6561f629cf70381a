package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/invaders/internal/object"
)

// Draw renders the frame and flushes it to the output.
func (s *Session) Draw() error {
	// On state or inactivity transitions, do a full terminal clear
	// so text from the previous screen does not persist.
	if s.state != s.drawnState || s.isInactive != s.wasInactive {
		s.term.Clear()
		s.drawnState = s.state
		s.wasInactive = s.isInactive
	}

	s.canvas.Clear()
	ctx := object.DrawContext{
		Canvas:   s.canvas,
		Term:     s.term,
		Renderer: s.opts.Renderer,
	}

	if s.state == StatePlaying {
		if err := s.game.Draw(ctx); err != nil {
			return err
		}
	} else if err := s.game.Background.Draw(ctx); err != nil {
		return err
	}

	s.canvas.Render(s.term)
	s.canvas.RenderBorder(s.term)

	if err := s.drawUI(ctx); err != nil {
		return err
	}
	return s.term.Flush()
}

// drawUI draws the text overlay for the current state.
func (s *Session) drawUI(ctx object.DrawContext) error {
	if s.state == StateShutdown {
		s.drawShutdownScreen()
		return nil
	}
	if s.isInactive {
		s.drawInactivityScreen()
		return nil
	}

	switch s.state {
	case StateMenu:
		return s.drawMenu(ctx)
	case StatePlaying:
		s.drawPlayingHUD()
	}
	return nil
}

// centered writes a possibly multi-line block centered horizontally,
// starting at row.
func (s *Session) centered(row int, block string) int {
	lines := strings.Split(block, "\n")
	width := lipgloss.Width(block)
	col := (s.canvas.TerminalWidth()-width)/2 + 1
	for i, line := range lines {
		s.term.Text(col, row+i, line)
	}
	return len(lines)
}

func (s *Session) style() lipgloss.Style {
	return s.opts.Renderer.NewStyle()
}

// drawMenu draws the title, the buttons and the leaderboard.
func (s *Session) drawMenu(ctx object.DrawContext) error {
	s.layoutButtons()
	centerRow := s.canvas.TerminalHeight() / 2

	title := s.style().Bold(true).Foreground(HoverColor).Render("MAIN MENU")
	s.centered(centerRow-5, title)

	for _, b := range s.buttons {
		if err := b.Draw(ctx); err != nil {
			return err
		}
	}

	row := centerRow + 4*len(s.buttons)
	scores := s.opts.Lobby.TopScores(LeaderboardSize)
	if len(scores) > 0 {
		header := s.style().Bold(true).Foreground(PlayColor).Render("HIGH SCORES")
		row += s.centered(row, header)
		for i, sc := range scores {
			line := fmt.Sprintf("%d. %-16s %8d", i+1, sc.Name, sc.Score)
			row += s.centered(row, line)
		}
	}

	hint := s.style().Faint(true).Render("W/S or arrows to choose, ENTER to select, Q to quit")
	s.centered(s.canvas.TerminalHeight()-1, hint)

	players := fmt.Sprintf("Players: %-4d", s.opts.Lobby.Players())
	s.term.Text(s.canvas.TerminalWidth()-len(players)-1, s.canvas.TerminalHeight(), players)
	return nil
}

// drawPlayingHUD draws score, lives and the won/lost overlays.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (s *Session) drawPlayingHUD() {
	g := s.game
	termWidth := s.canvas.TerminalWidth()
	centerRow := s.canvas.TerminalHeight() / 2

	s.term.Text(2, 1, fmt.Sprintf("Score: %-8d", g.Score))

	livesText := fmt.Sprintf("Lives: %-3d", g.Lives)
	s.term.Text(termWidth-len(livesText)-1, 1, livesText)

	waveText := fmt.Sprintf("Wave %d", g.Wave)
	s.term.Text((termWidth-len(waveText))/2+1, 1, waveText)

	switch {
	case g.Lost():
		title := s.style().Bold(true).Foreground(QuitColor).Render("You lost!")
		s.centered(centerRow-2, title)
		s.centered(centerRow, fmt.Sprintf("Score: %d", g.Score))
		if blinkOn() {
			s.centered(centerRow+2, ">>  Press ENTER to return to the menu  <<")
		}
	case g.Won():
		title := s.style().Bold(true).Foreground(PlayColor).Render("You won!")
		s.centered(centerRow-2, title)
		s.centered(centerRow, fmt.Sprintf("Score: %d", g.Score))
		if blinkOn() {
			s.centered(centerRow+2, ">>  Press ENTER for the next wave  <<")
		}
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (s *Session) drawInactivityScreen() {
	centerRow := s.canvas.TerminalHeight() / 2
	s.centered(centerRow-2, s.style().Bold(true).Render("INACTIVITY WARNING"))

	msg := "You have been inactive for too long."
	if d := s.opts.InactivityDisconnect; d > 0 {
		left := max(d-time.Since(s.lastInput), 0)
		msg += fmt.Sprintf(" You will be disconnected in %d seconds.", int(left.Seconds()))
	}
	s.centered(centerRow, msg)
	s.centered(centerRow+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (s *Session) drawShutdownScreen() {
	centerRow := s.canvas.TerminalHeight() / 2
	s.centered(centerRow-3, s.style().Bold(true).Foreground(QuitColor).Render("SERVER SHUTTING DOWN"))
	s.centered(centerRow-1, "The server is restarting for maintenance.")
	s.centered(centerRow, "Please reconnect in a moment.")
	s.centered(centerRow+2, fmt.Sprintf("Disconnecting in %d seconds...", int(s.shutdownTimer)+1))
	s.centered(centerRow+4, "Press Q to disconnect now")
}

// blinkOn toggles prompts on and off every 600ms.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}
