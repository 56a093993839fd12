// Package submission holds the two public form types, the canonical validation
// rules shared by the server and its clients, and the renderers that turn a
// submission into an operator email or a mailto: fallback link.
package submission

// Kind names a form type.
type Kind string

const (
	KindBooking Kind = "booking"
	KindContact Kind = "contact"
)

// Form is implemented by every submission type. Both the HTTP endpoint and the
// client drive a Form through the same steps: Normalize, Validate, then either
// Notification (server) or Mailto (client fallback).
type Form interface {
	Kind() Kind
	// Endpoint is the API path the form posts to.
	Endpoint() string
	// Normalize trims surrounding whitespace from every field.
	Normalize()
	// Validate returns a *ValidationError when a field is missing or malformed.
	Validate() error
	// Notification renders the operator email.
	Notification(site string) Notification
	// Mailto renders the fallback draft addressed to address.
	Mailto(address, site string) string
	// Acknowledgement is the message returned to the client on success.
	Acknowledgement() string
	// Summary is a short plain-text description used by operator alerts.
	Summary() string
}

// Notification is a rendered operator email.
type Notification struct {
	Subject string
	HTML    string
	ReplyTo string
}
