package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	ForceQuit    key.Binding
	SwitchFocus  key.Binding
	Analyze      key.Binding
	Friendly     key.Binding
	Polished     key.Binding
	Short        key.Binding
	Copy         key.Binding
	ClearHistory key.Binding
	Dismiss      key.Binding
}

// Ctrl/Cmd+Enter is not reported by terminals, so analyze sits on Ctrl+S and Alt+Enter.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		SwitchFocus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Analyze:      key.NewBinding(key.WithKeys("ctrl+s", "alt+enter"), key.WithHelp("ctrl+s", "analyze")),
		Friendly:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "friendly")),
		Polished:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "polished")),
		Short:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "short")),
		Copy:         key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy reply")),
		ClearHistory: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear history")),
		Dismiss:      key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
	}
}

// hints renders bindings as "[key]:desc" pairs for the status bar.
func hints(bindings ...key.Binding) string {
	s := ""
	for i, b := range bindings {
		if !b.Enabled() {
			continue
		}
		if i > 0 && s != "" {
			s += " | "
		}
		h := b.Help()
		s += "[" + h.Key + "]:" + h.Desc
	}
	return s
}
