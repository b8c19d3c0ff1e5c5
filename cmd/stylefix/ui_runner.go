package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jsrustad/stylefix/internal/engine"
	"github.com/jsrustad/stylefix/internal/ui"
)

// runWithUI drives work through the Bubble Tea progress display. The work
// function receives a sink for per-file events; the UI quits when the
// event channel closes.
func runWithUI[T any](title string, files []string, work func(engine.ProgressSink) (T, error)) (T, error) {
	events := make(chan engine.Event, 256)

	type outcome struct {
		value T
		err   error
	}
	outcomeCh := make(chan outcome, 1)

	go func() {
		value, err := work(engine.ChannelSink{Ch: events})
		outcomeCh <- outcome{value: value, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	out := <-outcomeCh
	if uiErr != nil && out.err == nil {
		out.err = uiErr
	}
	return out.value, out.err
}
