package mail

import (
	"text/template"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

type messageTemplate struct {
	subject *template.Template
	body    *template.Template
}

type NotificationData struct {
	Name          string
	Position      string
	Stage         string
	InterviewDate string
	InterviewType string
}

var templates = map[entity.TemplateType]messageTemplate{
	entity.TemplateApplicationReceived: mustTemplate(
		"applicationReceived",
		`We received your application, {{.Name}}`,
		`Hi {{.Name}},

Thanks for applying{{if .Position}} for the {{.Position}} role{{end}}. Our team will review your
application and get back to you soon.
`),
	entity.TemplateInterviewInvitation: mustTemplate(
		"interviewInvitation",
		`Interview invitation{{if .InterviewType}}: {{.InterviewType}}{{end}}`,
		`Hi {{.Name}},

We would like to invite you to {{if .InterviewType}}a {{.InterviewType}} {{else}}an {{end}}interview.
{{if .InterviewDate}}
When: {{.InterviewDate}}
{{end}}`),
	entity.TemplateAssessmentReminder: mustTemplate(
		"assessmentReminder",
		`Reminder: your assessment is waiting`,
		`Hi {{.Name}},

This is a reminder to complete your assessment{{if .Position}} for the {{.Position}} role{{end}}.
`),
	entity.TemplateStatusUpdate: mustTemplate(
		"statusUpdate",
		`Your application moved to {{.Stage}}`,
		`Hi {{.Name}},

Your application is now in the {{.Stage}} stage.
`),
}

func mustTemplate(name, subject, body string) messageTemplate {
	return messageTemplate{
		subject: template.Must(template.New(name + ".subject").Parse(subject)),
		body:    template.Must(template.New(name + ".body").Parse(body)),
	}
}
