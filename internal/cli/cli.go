// Package cli adapts the form client to a terminal: a spinner for the busy
// button, printed toasts, and the desktop's handler for mailto: links.
package cli

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"time"

	"github.com/swiftstatic/swiftstatic/internal/client"
	"github.com/swiftstatic/swiftstatic/internal/submission"

	"github.com/briandowns/spinner"
)

// Terminal renders a submission's progress to a writer.
type Terminal struct {
	out     io.Writer
	spinner *spinner.Spinner
	opener  func(url string) error
}

func NewTerminal(out io.Writer) *Terminal {
	s := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " Sending..."
	return &Terminal{out: out, spinner: s, opener: openURL}
}

// UI wires the terminal into every seam of client.UI.
func (t *Terminal) UI() client.UI {
	return client.UI{Control: t, Fields: t, Opener: t, Success: t}
}

func (t *Terminal) SetBusy(busy bool) {
	if busy {
		t.spinner.Start()
		return
	}
	t.spinner.Stop()
}

func (t *Terminal) MarkInvalid(fields []string) {
	for _, f := range fields {
		fmt.Fprintf(t.out, "  ✗ %s\n", f)
	}
}

func (t *Terminal) Open(url string) error {
	if err := t.opener(url); err != nil {
		fmt.Fprintf(t.out, "Could not open a mail client, send it yourself:\n%s\n", url)
		return err
	}
	return nil
}

func (t *Terminal) ShowSuccess(kind submission.Kind) {
	switch kind {
	case submission.KindBooking:
		fmt.Fprintln(t.out, "Thanks! Your free call request is on its way.")
	default:
		fmt.Fprintln(t.out, "Thanks for reaching out!")
	}
}

func (t *Terminal) Show(toast client.Toast) {
	fmt.Fprintln(t.out, toast.Message)
}

// Remove is a no-op: printed lines stay on screen.
func (t *Terminal) Remove(client.Toast) {}

func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", cmd.Args[0], err)
	}
	return cmd.Process.Release()
}
