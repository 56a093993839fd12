package submission

import (
	"strings"
	"text/template"
)

// Email bodies use text/template with an explicit esc function so every
// interpolated value goes through Escape and nothing else touches the output.
// Empty optional fields fall back through the builtin or.
var funcs = template.FuncMap{
	"esc": Escape,
}

const rowStyle = `border:1px solid #e5e7eb`

var bookingTemplate = template.Must(template.New("booking").Funcs(funcs).Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#6366f1;margin-bottom:16px">📅 New Free Call Booking</h2>
  <table cellpadding="10" style="border-collapse:collapse;width:100%;font-size:14px">
    <tr style="background:#f8f9fa"><td style="` + rowStyle + `;font-weight:600;width:140px">Name</td><td style="` + rowStyle + `">{{esc .Name}}</td></tr>
    <tr><td style="` + rowStyle + `;font-weight:600">Email</td><td style="` + rowStyle + `"><a href="mailto:{{esc .Email}}">{{esc .Email}}</a></td></tr>
    <tr style="background:#f8f9fa"><td style="` + rowStyle + `;font-weight:600">Service</td><td style="` + rowStyle + `">{{esc .Service}}</td></tr>
    <tr><td style="` + rowStyle + `;font-weight:600">Date</td><td style="` + rowStyle + `">{{esc .Date}}</td></tr>
    <tr style="background:#f8f9fa"><td style="` + rowStyle + `;font-weight:600">Time</td><td style="` + rowStyle + `">{{esc .Time}}</td></tr>
    <tr><td style="` + rowStyle + `;font-weight:600">Message</td><td style="` + rowStyle + `;white-space:pre-line">{{or (esc .Message) "(none)"}}</td></tr>
  </table>
</div>
`))

var contactTemplate = template.Must(template.New("contact").Funcs(funcs).Parse(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#6366f1;margin-bottom:16px">💬 New Contact Message</h2>
  <table cellpadding="10" style="border-collapse:collapse;width:100%;font-size:14px">
    <tr style="background:#f8f9fa"><td style="` + rowStyle + `;font-weight:600;width:160px">Name</td><td style="` + rowStyle + `">{{esc .Name}}</td></tr>
    <tr><td style="` + rowStyle + `;font-weight:600">Email</td><td style="` + rowStyle + `"><a href="mailto:{{esc .Email}}">{{esc .Email}}</a></td></tr>
    <tr style="background:#f8f9fa"><td style="` + rowStyle + `;font-weight:600">Interested Plan</td><td style="` + rowStyle + `">{{or (esc .Plan) "Not specified"}}</td></tr>
    <tr><td style="` + rowStyle + `;font-weight:600">Subject</td><td style="` + rowStyle + `">{{esc .Subject}}</td></tr>
    <tr style="background:#f8f9fa"><td style="` + rowStyle + `;font-weight:600;vertical-align:top">Message</td><td style="` + rowStyle + `;white-space:pre-line">{{esc .Message}}</td></tr>
  </table>
</div>
`))

func render(t *template.Template, data any) string {
	var b strings.Builder
	// The templates only read string fields of the value they were written
	// for, so Execute cannot fail at runtime.
	if err := t.Execute(&b, data); err != nil {
		panic("submission: render " + t.Name() + ": " + err.Error())
	}
	return b.String()
}
