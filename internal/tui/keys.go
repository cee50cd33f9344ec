package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	left       key.Binding
	right      key.Binding
	enter      key.Binding
	esc        key.Binding
	tab        key.Binding
	backtab    key.Binding
	quit       key.Binding
	logout     key.Binding
	sync       key.Binding
	rearm      key.Binding
	discard    key.Binding
	keepLocal  key.Binding
	keepServer key.Binding
	merge      key.Binding
	copyLocal  key.Binding
	copyServer key.Binding
	yes        key.Binding
	no         key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	left:       key.NewBinding(key.WithKeys("left", "h")),
	right:      key.NewBinding(key.WithKeys("right", "l")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	tab:        key.NewBinding(key.WithKeys("tab")),
	backtab:    key.NewBinding(key.WithKeys("shift+tab")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	logout:     key.NewBinding(key.WithKeys("L")),
	sync:       key.NewBinding(key.WithKeys("s")),
	rearm:      key.NewBinding(key.WithKeys("r")),
	discard:    key.NewBinding(key.WithKeys("d")),
	keepLocal:  key.NewBinding(key.WithKeys("1")),
	keepServer: key.NewBinding(key.WithKeys("2")),
	merge:      key.NewBinding(key.WithKeys("3")),
	copyLocal:  key.NewBinding(key.WithKeys("c")),
	copyServer: key.NewBinding(key.WithKeys("C")),
	yes:        key.NewBinding(key.WithKeys("y")),
	no:         key.NewBinding(key.WithKeys("n")),
}
