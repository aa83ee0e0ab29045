// Package notify provides notification delivery for generated alerts.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"supply-sentinel/internal/models"
)

// TerminalNotifier prints alerts to the terminal with priority coloring.
type TerminalNotifier struct {
	out io.Writer
}

// NewTerminalNotifier creates a terminal notifier writing to stdout.
func NewTerminalNotifier() *TerminalNotifier {
	return &TerminalNotifier{out: os.Stdout}
}

// NewTerminalNotifierTo creates a terminal notifier writing to w.
func NewTerminalNotifierTo(w io.Writer) *TerminalNotifier {
	return &TerminalNotifier{out: w}
}

// SendAlert prints a generated alert.
func (n *TerminalNotifier) SendAlert(ctx context.Context, alert models.ScoredAlert) error {
	_, err := fmt.Fprintln(n.out, colorFor(alert.Priority).Sprint(alert.Text))
	return err
}

// SendError prints a collector error.
func (n *TerminalNotifier) SendError(ctx context.Context, err error, context string) error {
	_, werr := fmt.Fprintf(n.out, "%s %s: %v\n", color.RedString("[error]"), context, err)
	return werr
}

func colorFor(p models.Priority) *color.Color {
	switch p {
	case models.PriorityCritical:
		return color.New(color.FgRed, color.Bold)
	case models.PriorityHigh:
		return color.New(color.FgYellow, color.Bold)
	case models.PriorityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}
