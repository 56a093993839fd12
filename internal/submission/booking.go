package submission

import (
	"fmt"
	"strings"
)

// BookingRequest is a request for a free call.
type BookingRequest struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required,mailbox"`
	Service string `json:"service" form:"service" validate:"required"`
	Date    string `json:"date" form:"date" validate:"required"` // YYYY-MM-DD
	Time    string `json:"time" form:"time" validate:"required"`
	Message string `json:"message" form:"message"`
}

func (b *BookingRequest) Kind() Kind { return KindBooking }

func (b *BookingRequest) Endpoint() string { return "/api/booking" }

func (b *BookingRequest) Normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Email = strings.TrimSpace(b.Email)
	b.Service = strings.TrimSpace(b.Service)
	b.Date = strings.TrimSpace(b.Date)
	b.Time = strings.TrimSpace(b.Time)
	b.Message = strings.TrimSpace(b.Message)
}

func (b *BookingRequest) Validate() error {
	return validateStruct(b)
}

func (b *BookingRequest) Notification(site string) Notification {
	return Notification{
		Subject: headerSafe("Free Call Booking: " + b.Name),
		HTML:    render(bookingTemplate, b),
		ReplyTo: b.Email,
	}
}

func (b *BookingRequest) Mailto(address, site string) string {
	message := b.Message
	if message == "" {
		message = "(none)"
	}
	body := fmt.Sprintf("Name: %s\nEmail: %s\nService: %s\nDate: %s\nTime: %s\n\nMessage:\n%s",
		b.Name, b.Email, b.Service, b.Date, b.Time, message)
	return mailtoURL(address, "Free Call Booking: "+b.Name, body)
}

func (b *BookingRequest) Acknowledgement() string { return "Booking received!" }

func (b *BookingRequest) Summary() string {
	return fmt.Sprintf("New booking from %s <%s>: %s on %s at %s", b.Name, b.Email, b.Service, b.Date, b.Time)
}
