package form

import (
	"html/template"
	"io"
)

const successMessage = "Thank you for your enquiry! We'll be in touch soon."

var pageTemplate = template.Must(template.New("enquiry").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Enquiry</title>
</head>
<body>
{{- if .Succeeded}}
<div class="banner banner-success" style="background:#dcfce7;color:#166534;padding:1rem">{{.SuccessMessage}}</div>
{{- end}}
{{- if .RootError}}
<div class="banner banner-error" role="alert" style="background:#fee2e2;color:#991b1b;padding:1rem">{{.RootError}}</div>
{{- end}}
{{- if .ShowFields}}
<form method="post" action="{{.Action}}">
<label for="email">Email</label>
<input id="email" name="email" type="email" placeholder="john.doe@gmail.com" value="{{.Values.Email}}">
<label for="message">Message</label>
<textarea id="message" name="message" placeholder="Placeholder">{{.Values.Message}}</textarea>
{{- if .Submitting}}
<button type="submit" disabled>Submitting...</button>
{{- else}}
<button type="submit">Submit</button>
{{- end}}
</form>
{{- end}}
</body>
</html>
`))

type pageView struct {
	Action         string
	Values         Values
	ShowFields     bool
	Submitting     bool
	Succeeded      bool
	SuccessMessage string
	RootError      string
}

// Render writes the form page for its current state. action is the URL the
// browser form posts back to.
func (f *Form) Render(w io.Writer, action string) error {
	f.mu.Lock()
	view := pageView{
		Action:         action,
		Values:         f.values,
		ShowFields:     !f.state.Submitted(),
		Submitting:     f.state == StateSubmitting,
		Succeeded:      f.state == StateSucceeded,
		SuccessMessage: successMessage,
		RootError:      f.rootError,
	}
	f.mu.Unlock()

	return pageTemplate.Execute(w, view)
}
