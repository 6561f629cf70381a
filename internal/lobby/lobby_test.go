package lobby

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAssignsIDs(t *testing.T) {
	l := New()
	a := l.Register("alice")
	b := l.Register("bob")

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.Equal(t, 2, l.Players())

	l.Unregister(a.ID)
	assert.Equal(t, 1, l.Players())
}

func TestSubmitScoreKeepsBest(t *testing.T) {
	l := New()
	a := l.Register("alice")

	l.SubmitScore(a.ID, 500)
	l.SubmitScore(a.ID, 200)
	l.SubmitScore(a.ID, 800)

	top := l.TopScores(10)
	require.Len(t, top, 1)
	assert.Equal(t, "alice", top[0].Name)
	assert.Equal(t, 800, top[0].Score)
}

func TestSubmitScoreUnknownSession(t *testing.T) {
	l := New()
	l.SubmitScore(42, 100)
	assert.Empty(t, l.TopScores(10))
}

func TestTopScoresOrder(t *testing.T) {
	l := New()
	a := l.Register("alice")
	b := l.Register("bob")
	c := l.Register("carol")

	l.SubmitScore(c.ID, 300)
	l.SubmitScore(b.ID, 100)
	l.SubmitScore(a.ID, 100)

	top := l.TopScores(10)
	require.Len(t, top, 3)
	assert.Equal(t, "carol", top[0].Name)
	assert.Equal(t, "alice", top[1].Name, "ties go to the earlier session")
	assert.Equal(t, "bob", top[2].Name)

	assert.Len(t, l.TopScores(2), 2)
}

func TestScoresSurviveUnregister(t *testing.T) {
	l := New()
	a := l.Register("alice")
	l.SubmitScore(a.ID, 100)
	l.Unregister(a.ID)

	top := l.TopScores(5)
	require.Len(t, top, 1)
	assert.Equal(t, 100, top[0].Score)
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	l := New()
	h := l.Register("alice")

	go func() {
		ev := <-h.Events
		if ev.Type == EventShutdown {
			l.Unregister(h.ID)
		}
	}()

	start := time.Now()
	l.Shutdown(5 * time.Second)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 0, l.Players())

	late := l.Register("bob")
	select {
	case ev := <-late.Events:
		assert.Equal(t, EventShutdown, ev.Type)
	default:
		t.Fatal("late session was not told about the shutdown")
	}
}

func TestShutdownTimesOut(t *testing.T) {
	l := New()
	l.Register("stuck")

	start := time.Now()
	l.Shutdown(100 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, 1, l.Players())
}
