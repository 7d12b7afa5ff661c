package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/casedesk/internal/store"
)

// changeFeed turns store notifications into Bubble Tea messages. Listeners
// run inside Update (the mutator's caller), so push never blocks: a pending
// change is replaced by the newer one, whose State already includes it.
type changeFeed struct {
	ch          chan store.Change
	unsubscribe func()
}

func newChangeFeed(s *store.Store) *changeFeed {
	f := &changeFeed{ch: make(chan store.Change, 1)}
	f.unsubscribe = s.Subscribe(f.push)
	return f
}

func (f *changeFeed) push(c store.Change) {
	for {
		select {
		case f.ch <- c:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

// wait blocks in a command goroutine until the next change arrives.
func (f *changeFeed) wait() tea.Cmd {
	return func() tea.Msg {
		return storeChangedMsg{change: <-f.ch, fromFeed: true}
	}
}

func (f *changeFeed) close() {
	f.unsubscribe()
}

// loadCmd delivers the current working set as if it had just changed.
func loadCmd(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		return storeChangedMsg{change: store.Change{Applied: true, State: s.Snapshot()}}
	}
}
