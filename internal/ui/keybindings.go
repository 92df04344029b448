package ui

import "github.com/charmbracelet/bubbletea"

// --- Key Constants ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "escape", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool {
	return isKey(msg, "up")
}

func isDown(msg tea.KeyMsg) bool {
	return isKey(msg, "down")
}

func isLeft(msg tea.KeyMsg) bool {
	return isKey(msg, "left")
}

func isRight(msg tea.KeyMsg) bool {
	return isKey(msg, "right")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter", "return")
}

func isSpace(msg tea.KeyMsg) bool {
	return isKey(msg, " ")
}

// --- Vim Aliases ---

func (a App) up(msg tea.KeyMsg) bool    { return isUp(msg) || (a.vimKeys && isKey(msg, "k")) }
func (a App) down(msg tea.KeyMsg) bool  { return isDown(msg) || (a.vimKeys && isKey(msg, "j")) }
func (a App) left(msg tea.KeyMsg) bool  { return isLeft(msg) || (a.vimKeys && isKey(msg, "h")) }
func (a App) right(msg tea.KeyMsg) bool { return isRight(msg) || (a.vimKeys && isKey(msg, "l")) }
