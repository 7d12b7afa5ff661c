package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// searchBox is the "/" filter line shared by the list views. While focused
// it captures every key.
type searchBox struct {
	input  textinput.Model
	active bool
}

func newSearchBox(placeholder string) searchBox {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	return searchBox{input: ti}
}

func (s *searchBox) focus() tea.Cmd {
	s.active = true
	return s.input.Focus()
}

// update feeds a key to the input. Enter keeps the query, esc clears it;
// both hand the keyboard back to the list.
func (s *searchBox) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		s.active = false
		s.input.Blur()
		return nil
	case "esc":
		s.active = false
		s.input.Blur()
		s.input.SetValue("")
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s searchBox) value() string { return s.input.Value() }

func (s searchBox) view() string {
	if !s.active && s.input.Value() == "" {
		return ""
	}
	return s.input.View()
}

// nextStatus cycles a status filter through "" (all) and every value.
func nextStatus[T ~string](current T, all []T) T {
	if current == "" {
		return all[0]
	}
	for i, v := range all {
		if v == current && i+1 < len(all) {
			return all[i+1]
		}
	}
	return ""
}

func filterLabel[T ~string](v T) string {
	if v == "" {
		return "all"
	}
	return string(v)
}

// moveCursor applies up/down to cursor within n rows.
func moveCursor(cursor, n int, up bool) int {
	if up {
		cursor--
	} else {
		cursor++
	}
	return clamp(cursor, 0, max(0, n-1))
}

func cursorPrefix(selected bool) (string, func(...string) string) {
	if selected {
		return "> ", selectedItemStyle.Render
	}
	return "  ", normalItemStyle.Render
}

// visibleRange picks the rows to draw so the cursor stays on screen.
func visibleRange(cursor, n, size int) (start, end int) {
	if size <= 0 || n <= size {
		return 0, n
	}
	start = clamp(cursor-size/2, 0, n-size)
	return start, start + size
}
