package submission

import (
	"fmt"
	"strings"
)

// ContactRequest is a general enquiry, optionally about a pricing plan.
type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required,mailbox"`
	Plan    string `json:"plan" form:"plan"`
	Subject string `json:"subject" form:"subject" validate:"required"`
	Message string `json:"message" form:"message" validate:"required"`
}

func (c *ContactRequest) Kind() Kind { return KindContact }

func (c *ContactRequest) Endpoint() string { return "/api/contact" }

func (c *ContactRequest) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Plan = strings.TrimSpace(c.Plan)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Message = strings.TrimSpace(c.Message)
}

func (c *ContactRequest) Validate() error {
	return validateStruct(c)
}

func (c *ContactRequest) subjectLine(site string) string {
	return fmt.Sprintf("[%s Contact] %s", site, c.Subject)
}

func (c *ContactRequest) Notification(site string) Notification {
	return Notification{
		Subject: headerSafe(c.subjectLine(site)),
		HTML:    render(contactTemplate, c),
		ReplyTo: c.Email,
	}
}

func (c *ContactRequest) Mailto(address, site string) string {
	var body strings.Builder
	fmt.Fprintf(&body, "Name: %s\nEmail: %s\n", c.Name, c.Email)
	if c.Plan != "" {
		fmt.Fprintf(&body, "Interested Plan: %s\n", c.Plan)
	}
	fmt.Fprintf(&body, "Subject: %s\n\nMessage:\n%s", c.Subject, c.Message)
	return mailtoURL(address, c.subjectLine(site), body.String())
}

func (c *ContactRequest) Acknowledgement() string { return "Message received!" }

func (c *ContactRequest) Summary() string {
	return fmt.Sprintf("New message from %s <%s>: %s", c.Name, c.Email, c.Subject)
}
