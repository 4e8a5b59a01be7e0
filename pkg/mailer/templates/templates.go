// Package templates renders the transactional email bodies.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

var resetTpl = template.Must(template.New("password_reset").Parse(`
<p>Hi {{.Name}},</p>
<p>We received a request to reset the password for your LeaseDrive account.</p>
<p><a href="{{.Link}}">Reset your password</a></p>
<p>The link expires in {{.ExpiresIn}}. If you did not request this, you can ignore this email.</p>
`))

var confirmTpl = template.Must(template.New("account_confirmation").Parse(`
<p>Hi {{.Name}},</p>
<p>Welcome to LeaseDrive. Confirm your account to start leasing:</p>
<p><a href="{{.Link}}">Confirm your account</a></p>
<p>The link expires in {{.ExpiresIn}}.</p>
`))

var decisionTpl = template.Must(template.New("dealership_decision").Parse(`
<p>Hi {{.Name}},</p>
<p>Your dealership application has been <strong>{{.Decision}}</strong>.</p>
{{if .Note}}<p>{{.Note}}</p>{{end}}
`))

var subjects = map[string]string{
	"password_reset":       "Reset your LeaseDrive password",
	"account_confirmation": "Confirm your LeaseDrive account",
	"dealership_decision":  "Your dealership application",
}

// Render returns subject and HTML body for the named template.
func Render(name string, data map[string]any) (subject, html string, err error) {
	var tpl *template.Template
	switch name {
	case "password_reset":
		tpl = resetTpl
	case "account_confirmation":
		tpl = confirmTpl
	case "dealership_decision":
		tpl = decisionTpl
	default:
		return "", "", fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subjects[name], buf.String(), nil
}
