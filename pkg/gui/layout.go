package gui

import "github.com/rivo/tview"

type Action string

const (
	ActionRestart Action = "Restart"
	ActionQuit    Action = "Quit"
)

// NewLayout arranges the board, the status line and the action buttons.
func NewLayout(r *Renderer, title string, onAction func(Action)) *tview.Grid {
	restartBtn := tview.NewButton(string(ActionRestart)).SetSelectedFunc(func() {
		onAction(ActionRestart)
	})
	quitBtn := tview.NewButton(string(ActionQuit)).SetSelectedFunc(func() {
		onAction(ActionQuit)
	})

	heading := tview.NewTextView().SetText(title)

	options := tview.NewGrid().
		SetColumns(10, 10).
		SetRows(1, 1, -1).
		SetGap(1, 1).
		AddItem(heading, 0, 0, 1, 2, 0, 0, false).
		AddItem(restartBtn, 1, 0, 1, 1, 0, 0, false).
		AddItem(quitBtn, 1, 1, 1, 1, 0, 0, false).
		AddItem(r.Status, 2, 0, 1, 2, 0, 0, false)

	return tview.NewGrid().
		SetRows(-1, BoardHeight, -1).
		SetColumns(-1, BoardWidth, 24, -1).
		AddItem(tview.NewBox(), 0, 0, 1, 4, 0, 0, false).
		AddItem(tview.NewBox(), 1, 0, 1, 1, 0, 0, false).
		AddItem(r, 1, 1, 1, 1, 0, 0, true).
		AddItem(options, 1, 2, 1, 1, 0, 0, false).
		AddItem(tview.NewBox(), 1, 3, 1, 1, 0, 0, false).
		AddItem(tview.NewBox(), 2, 0, 1, 4, 0, 0, false)
}
