// Package tui is an interactive demo host for the transition engine: a
// keyed list you can add to and remove from, with enter and leave phases
// rendered as styled rows.
package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morphkit/morph/internal/transition"
)

// frameInterval is the demo frame cadence. Each frame advances the
// deterministic wheel by the same amount, so the demo clock tracks wall
// time closely enough for animation purposes.
const frameInterval = 50 * time.Millisecond

const (
	demoEnterDuration = 300 * time.Millisecond
	demoLeaveDuration = 400 * time.Millisecond
)

// frameMsg drives one animation frame.
type frameMsg time.Time

// Model is the bubbletea model hosting a transition group.
type Model struct {
	group *transition.Group
	wheel *transition.Wheel

	keys  KeyGenerator
	items []transition.Item
	added int

	markup   bool
	quitting bool
}

// New builds the demo model. gen supplies keys for added items; pass
// UUIDKeyGenerator{} outside of tests.
func New(gen KeyGenerator) (*Model, error) {
	wheel := transition.NewWheel(time.Now())
	group, err := transition.New(transition.Config{
		Prefix:        transition.DefaultPrefix,
		EnterDuration: demoEnterDuration,
		LeaveDuration: demoLeaveDuration,
		Wrapper:       &transition.Wrapper{Tag: "li", Class: "morph-item"},
	}, wheel)
	if err != nil {
		return nil, err
	}

	m := &Model{group: group, wheel: wheel, keys: gen}
	m.group.Update(m.items)
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.wheel.Advance(frameInterval)
		m.group.Tick()
		return m, frameTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			m.group.Close()
			return m, tea.Quit
		case "a":
			m.append()
		case "i":
			m.prepend()
		case "d", "backspace":
			m.removeLast()
		case "r":
			m.removeFirst()
		case "s":
			m.shuffle()
		case "w":
			m.markup = !m.markup
		}
	}
	return m, nil
}

func (m *Model) append() {
	m.items = append(m.items, m.newItem())
	m.group.Update(m.items)
}

func (m *Model) prepend() {
	m.items = append([]transition.Item{m.newItem()}, m.items...)
	m.group.Update(m.items)
}

func (m *Model) removeLast() {
	if len(m.items) == 0 {
		return
	}
	m.items = m.items[:len(m.items)-1]
	m.group.Update(m.items)
}

func (m *Model) removeFirst() {
	if len(m.items) == 0 {
		return
	}
	m.items = m.items[1:]
	m.group.Update(m.items)
}

// shuffle reorders the collection without changing membership. No key
// enters or leaves, so nothing animates.
func (m *Model) shuffle() {
	rand.Shuffle(len(m.items), func(i, j int) {
		m.items[i], m.items[j] = m.items[j], m.items[i]
	})
	m.group.Update(m.items)
}

func (m *Model) newItem() transition.Item {
	item := transition.Item{
		Key:     m.keys.NewKey(),
		Payload: labelFor(m.added),
	}
	m.added++
	return item
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("morph demo"))
	b.WriteString("\n\n")

	rendered := m.group.Render()
	if len(rendered) == 0 {
		b.WriteString(helpStyle.Render("(empty)"))
		b.WriteString("\n")
	}
	cfg := m.group.Config()
	for _, r := range rendered {
		style := styleFor(r.Phase, cfg.Prefix)
		row := fmt.Sprintf("• %v", r.Payload)
		if m.markup {
			row = wrapperMarkup(cfg.Wrapper, r)
		}
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("a add · i insert front · d remove last · r remove first · s shuffle · w markup · q quit"))
	b.WriteString("\n")
	return b.String()
}

// wrapperMarkup shows what a markup host would emit for one slot: the
// configured wrapper element with the phase tag appended to its class list.
func wrapperMarkup(wr *transition.Wrapper, r transition.RenderedItem) string {
	if wr == nil {
		return fmt.Sprintf("%v", r.Payload)
	}
	class := strings.TrimSpace(strings.Join([]string{wr.Class, r.Phase}, " "))
	return fmt.Sprintf("<%s class=%q>%v</%s>", wr.Tag, class, r.Payload, wr.Tag)
}

// Run starts the demo in the alternate screen until the user quits.
func Run() error {
	m, err := New(UUIDKeyGenerator{})
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
