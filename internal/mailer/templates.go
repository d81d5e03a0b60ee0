// AngelaMos | 2026
// templates.go

package mailer

import (
	"fmt"
	"html/template"
	"strings"
)

var verificationTmpl = template.Must(template.New("verification").Parse(`
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
  <p>Thanks for signing up. Please confirm your email address to activate
  your account.</p>
  <p><a href="{{.Link}}" style="display:inline-block;padding:10px 20px;background:#2d6cdf;color:#fff;text-decoration:none;border-radius:4px;">Verify my account</a></p>
  <p>If the button does not work, copy this link into your browser:</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
  <p>If you did not create an account, you can safely ignore this email.</p>
</body>
</html>`))

var passwordResetTmpl = template.Must(template.New("password_reset").Parse(`
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Password reset requested</h2>
  <p>Hi{{if .Name}} {{.Name}}{{end}},</p>
  <p>We received a request to reset the password for your account. The link
  below is valid for one hour.</p>
  <p><a href="{{.Link}}" style="display:inline-block;padding:10px 20px;background:#2d6cdf;color:#fff;text-decoration:none;border-radius:4px;">Reset my password</a></p>
  <p>If the button does not work, copy this link into your browser:</p>
  <p><a href="{{.Link}}">{{.Link}}</a></p>
  <p>If you did not request a reset, no action is needed; your password is
  unchanged.</p>
</body>
</html>`))

type templateData struct {
	Name string
	Link string
}

func renderVerification(name, link string) (string, error) {
	return render(verificationTmpl, templateData{Name: name, Link: link})
}

func renderPasswordReset(name, link string) (string, error) {
	return render(passwordResetTmpl, templateData{Name: name, Link: link})
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}
