// Package lobby tracks the game sessions of one process: who is connected,
// their best scores, and shutdown notifications.
package lobby

import (
	"sort"
	"sync"
	"time"
)

// EventType identifies the type of lobby event.
type EventType int

const (
	EventShutdown EventType = iota
)

// Event is sent from the lobby to a session.
type Event struct {
	Type EventType
}

// Handle represents one registered session.
type Handle struct {
	ID     int
	Name   string
	Events chan Event // Events sent to the session (shutdown)
}

// Score is one leaderboard entry.
type Score struct {
	Name  string
	Score int
	id    int
}

// Lobby is shared by all sessions of a process. Safe for concurrent use.
type Lobby struct {
	mu      sync.RWMutex
	handles map[int]*Handle
	best    map[int]Score
	nextID  int
	closing bool
}

// New creates an empty lobby.
func New() *Lobby {
	return &Lobby{
		handles: make(map[int]*Handle),
		best:    make(map[int]Score),
		nextID:  1,
	}
}

// Register adds a session with the given display name and returns its handle.
// Sessions registered after Shutdown started receive EventShutdown at once.
func (l *Lobby) Register(name string) *Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	h := &Handle{
		ID:     l.nextID,
		Name:   name,
		Events: make(chan Event, 4),
	}
	l.nextID++
	l.handles[h.ID] = h

	if l.closing {
		h.Events <- Event{Type: EventShutdown}
	}
	return h
}

// Unregister removes a session. Its best score stays on the leaderboard.
func (l *Lobby) Unregister(id int) {
	l.mu.Lock()
	delete(l.handles, id)
	l.mu.Unlock()
}

// SubmitScore records a finished game. Only the session's best score is kept.
func (l *Lobby) SubmitScore(id, score int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	h, ok := l.handles[id]
	if !ok {
		return
	}
	if prev, ok := l.best[id]; ok && prev.Score >= score {
		return
	}
	l.best[id] = Score{Name: h.Name, Score: score, id: id}
}

// TopScores returns up to n entries sorted by score, highest first.
// Equal scores keep registration order.
func (l *Lobby) TopScores(n int) []Score {
	l.mu.RLock()
	scores := make([]Score, 0, len(l.best))
	for _, s := range l.best {
		scores = append(scores, s)
	}
	l.mu.RUnlock()

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].id < scores[j].id
	})
	if n >= 0 && len(scores) > n {
		scores = scores[:n]
	}
	return scores
}

// Players returns the number of registered sessions.
func (l *Lobby) Players() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.handles)
}

// Shutdown notifies every session and waits for them to unregister,
// up to the given timeout.
func (l *Lobby) Shutdown(timeout time.Duration) {
	l.mu.Lock()
	l.closing = true
	for _, h := range l.handles {
		select {
		case h.Events <- Event{Type: EventShutdown}:
		default:
		}
	}
	l.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.Players() == 0 {
			return
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
