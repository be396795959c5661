// Package picker is a full-screen tcell list used to choose one search result.
package picker

import (
	"github.com/gdamore/tcell/v2"
)

// ScreenFactory creates the screen Pick draws on. It is replaced in tests.
type ScreenFactory func() (tcell.Screen, error)

// Picker chooses one item from a list with the keyboard.
type Picker struct {
	newScreen ScreenFactory
	theme     Theme
	title     string
}

// New returns a Picker drawing on screens from factory, or on the controlling
// terminal when factory is nil.
func New(factory ScreenFactory) *Picker {
	if factory == nil {
		factory = tcell.NewScreen
	}
	return &Picker{
		newScreen: factory,
		theme:     DefaultTheme(),
		title:     "Select a result",
	}
}

// Pick shows items and blocks until the user chooses one or cancels. An error
// means no screen could be set up.
func (p *Picker) Pick(items []string) (int, bool, error) {
	screen, err := p.newScreen()
	if err != nil {
		return 0, false, err
	}
	if err := screen.Init(); err != nil {
		return 0, false, err
	}
	defer screen.Fini()

	idx, ok := p.run(screen, items)
	return idx, ok, nil
}

func (p *Picker) run(screen tcell.Screen, items []string) (int, bool) {
	if len(items) == 0 {
		return 0, false
	}
	m := &model{items: items}

	for {
		_, h := screen.Size()
		m.resize(listHeight(h))
		p.draw(screen, m)

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// Screen finalised underneath us.
			return 0, false
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch m.handleKey(ev) {
			case outcomeSelect:
				return m.selected, true
			case outcomeCancel:
				return 0, false
			}
		}
	}
}

type outcome int

const (
	outcomeContinue outcome = iota
	outcomeSelect
	outcomeCancel
)

// model is the cursor state of the list. offset is the first visible row.
type model struct {
	items    []string
	selected int
	offset   int
	height   int
}

func (m *model) handleKey(ev *tcell.EventKey) outcome {
	switch ev.Key() {
	case tcell.KeyEnter:
		return outcomeSelect
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return outcomeCancel
	case tcell.KeyUp, tcell.KeyCtrlP:
		m.move(-1)
	case tcell.KeyDown, tcell.KeyCtrlN:
		m.move(1)
	case tcell.KeyPgUp:
		m.move(-m.page())
	case tcell.KeyPgDn:
		m.move(m.page())
	case tcell.KeyHome:
		m.moveTo(0)
	case tcell.KeyEnd:
		m.moveTo(len(m.items) - 1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return outcomeCancel
		case 'k':
			m.move(-1)
		case 'j':
			m.move(1)
		case 'g':
			m.moveTo(0)
		case 'G':
			m.moveTo(len(m.items) - 1)
		}
	}
	return outcomeContinue
}

func (m *model) page() int {
	if m.height < 1 {
		return 1
	}
	return m.height
}

func (m *model) move(delta int) {
	m.moveTo(m.selected + delta)
}

func (m *model) moveTo(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(m.items)-1 {
		idx = len(m.items) - 1
	}
	m.selected = idx
	m.clampOffset()
}

func (m *model) resize(height int) {
	m.height = height
	m.clampOffset()
}

func (m *model) clampOffset() {
	if m.height < 1 {
		m.offset = m.selected
		return
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
