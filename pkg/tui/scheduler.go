package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// continuationMsg carries work back onto the Update loop
type continuationMsg struct {
	fn func()
}

// cmdQueue turns controller scheduling requests into tea commands.
// Requests collected during one Update are returned by flush.
type cmdQueue struct {
	pending []tea.Cmd
}

func (q *cmdQueue) Go(task func() func()) {
	q.pending = append(q.pending, func() tea.Msg {
		return continuationMsg{fn: task()}
	})
}

func (q *cmdQueue) After(d time.Duration, fn func()) {
	q.pending = append(q.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return continuationMsg{fn: fn}
	}))
}

func (q *cmdQueue) flush() tea.Cmd {
	if len(q.pending) == 0 {
		return nil
	}
	cmds := q.pending
	q.pending = nil
	return tea.Batch(cmds...)
}

// scrollLock stops grid scrolling while the modal is open
type scrollLock struct {
	suspended bool
}

func (s *scrollLock) Suspend() { s.suspended = true }
func (s *scrollLock) Resume()  { s.suspended = false }
