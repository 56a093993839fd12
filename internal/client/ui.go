package client

import "github.com/swiftstatic/swiftstatic/internal/submission"

const msgInvalid = "⚠️ Please fill in all required fields correctly."

type messages struct {
	delivered string
	fallback  string
}

var formMessages = map[submission.Kind]messages{
	submission.KindBooking: {
		delivered: "🎉 Booking received! We'll confirm your call soon.",
		fallback:  "📧 Opening email client to complete booking.",
	},
	submission.KindContact: {
		delivered: "✅ Message sent! We'll reply within 24 hours.",
		fallback:  "📧 Opening email client to send your message.",
	},
}

func messagesFor(kind submission.Kind) messages {
	if m, ok := formMessages[kind]; ok {
		return m
	}
	return messages{delivered: "Sent!", fallback: "📧 Opening email client."}
}

// Control is the submit button: disabled and showing progress while busy.
type Control interface {
	SetBusy(busy bool)
}

// FieldMarker flags inputs. An empty list clears every mark.
type FieldMarker interface {
	MarkInvalid(fields []string)
}

// Opener hands a mailto: URL to the user's mail program.
type Opener interface {
	Open(url string) error
}

// SuccessView swaps the form for its thank-you panel.
type SuccessView interface {
	ShowSuccess(kind submission.Kind)
}

// UI bundles the seams a submission drives. Nil members do nothing.
type UI struct {
	Control Control
	Fields  FieldMarker
	Opener  Opener
	Success SuccessView
}

func (u UI) withDefaults() UI {
	if u.Control == nil {
		u.Control = nopUI{}
	}
	if u.Fields == nil {
		u.Fields = nopUI{}
	}
	if u.Opener == nil {
		u.Opener = nopUI{}
	}
	if u.Success == nil {
		u.Success = nopUI{}
	}
	return u
}

type nopUI struct{}

func (nopUI) SetBusy(bool)                {}
func (nopUI) MarkInvalid([]string)        {}
func (nopUI) Open(string) error           { return nil }
func (nopUI) ShowSuccess(submission.Kind) {}

type noopDisplay struct{}

func (noopDisplay) Show(Toast)   {}
func (noopDisplay) Remove(Toast) {}
