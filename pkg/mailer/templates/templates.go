package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

// Small inline templates; with a single transactional email there is no
// need for embedded template files.

const welcomeSubject = "Welcome to {{ .AppName }}"

const welcomeText = `Hi {{ .Name }},

Your account {{ .Email }} has been created. You can now sign in and start
adding recipes, tags, and ingredients.

- The {{ .AppName }} team
`

const welcomeHTML = `<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome to {{ .AppName }}</h2>
  <p>Hi {{ .Name }},</p>
  <p>Your account <strong>{{ .Email }}</strong> has been created. You can now
  sign in and start adding recipes, tags, and ingredients.</p>
  <p>&mdash; The {{ .AppName }} team</p>
</body>
</html>
`

var (
	subjectTpls = map[string]*texttpl.Template{
		"welcome": texttpl.Must(texttpl.New("welcome_subject").Parse(welcomeSubject)),
	}
	textTpls = map[string]*texttpl.Template{
		"welcome": texttpl.Must(texttpl.New("welcome_text").Parse(welcomeText)),
	}
	htmlTpls = map[string]*htmpl.Template{
		"welcome": htmpl.Must(htmpl.New("welcome_html").Parse(welcomeHTML)),
	}
)

// Render renders the named template and returns subject, text, and html
// bodies.
func Render(name string, data map[string]any) (string, string, string, error) {
	st, ok := subjectTpls[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var subject, text, html bytes.Buffer
	if err := st.Execute(&subject, data); err != nil {
		return "", "", "", err
	}
	if err := textTpls[name].Execute(&text, data); err != nil {
		return "", "", "", err
	}
	if err := htmlTpls[name].Execute(&html, data); err != nil {
		return "", "", "", err
	}
	return subject.String(), text.String(), html.String(), nil
}
