package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexiqai/ttsdesk/internal/converter"
)

// Converter runs one conversion to completion
type Converter interface {
	Convert(ctx context.Context, req converter.Request) converter.Result
}

// ConversionDoneMsg carries a finished conversion back to the UI loop
type ConversionDoneMsg struct {
	Result converter.Result
}

// convertCmd runs the conversion on bubbletea's command goroutine; the only
// thing it hands back is the completion message.
func convertCmd(ctx context.Context, c Converter, req converter.Request) tea.Cmd {
	return func() tea.Msg {
		return ConversionDoneMsg{Result: c.Convert(ctx, req)}
	}
}
