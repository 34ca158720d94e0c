package mailer

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

// TemplateResetPassword is the job template name for password-reset mail.
const TemplateResetPassword = "reset_password"

var resetSubject = "Password reset request"

var resetText = texttpl.Must(texttpl.New("reset_text").Parse(
	`Hi {{.Name}},

You are receiving this email because you (or someone else) requested the
reset of a password. To reset it, make a PUT request to:

{{.ResetURL}}

This link expires in 10 minutes. If you did not request a reset, you can
safely ignore this email.
`))

var resetHTML = htmpl.Must(htmpl.New("reset_html").Parse(
	`<p>Hi {{.Name}},</p>
<p>You are receiving this email because you (or someone else) requested a
password reset. Use the link below within 10 minutes:</p>
<p><a href="{{.ResetURL}}">{{.ResetURL}}</a></p>
<p>If you did not request a reset, you can safely ignore this email.</p>
`))

// Render fills a named template with data, returning subject, text, and html bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case TemplateResetPassword:
		var tb, hb bytes.Buffer
		if err = resetText.Execute(&tb, data); err != nil {
			return "", "", "", err
		}
		if err = resetHTML.Execute(&hb, data); err != nil {
			return "", "", "", err
		}
		return resetSubject, tb.String(), hb.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
