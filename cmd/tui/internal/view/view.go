package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is one screen of the billing console. The root model swaps screens
// in and out and uses Title and ShortHelp for the surrounding chrome.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel holds state shared across screens.
type CommonModel struct{}

// BackMsg hands control back to the menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
