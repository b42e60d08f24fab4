package emails

import (
	"html/template"
	"strings"
)

type ScheduledData struct {
	CandidateName   string
	InterviewTitle  string
	InterviewDate   string
	InterviewTime   string
	InterviewerName string
	MeetingLink     string
}

type FeedbackData struct {
	CandidateName   string
	InterviewTitle  string
	InterviewerName string
	Feedback        string
	Passed          bool
}

type ResultData struct {
	CandidateName   string
	InterviewTitle  string
	InterviewerName string
	Rating          int
	Feedback        string
	Passed          bool
}

func render(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

var scheduledTmpl = template.Must(template.New("scheduled").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
  <h1>Interview Scheduled</h1>
  <p>Hi <strong>{{.CandidateName}}</strong>,</p>
  <p>Your interview has been scheduled. Here are the details:</p>
  <div style="background: #f9f9f9; padding: 20px; border-radius: 8px;">
    <p><strong>Position:</strong> {{.InterviewTitle}}</p>
    <p><strong>Date:</strong> {{.InterviewDate}}</p>
    <p><strong>Time:</strong> {{.InterviewTime}}</p>
    <p><strong>Interviewer:</strong> {{.InterviewerName}}</p>
    {{if .MeetingLink}}<p><strong>Meeting Link:</strong> <a href="{{.MeetingLink}}">Join Meeting</a></p>{{end}}
  </div>
  <p>Please join five minutes early and make sure you have a stable connection.</p>
  <p>Best of luck,<br><strong>The InterLink Team</strong></p>
  <p style="color: #666; font-size: 13px;">This is an automated message. Please do not reply to this email.</p>
</div>
`))

var feedbackTmpl = template.Must(template.New("feedback").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
  <h1>Interview Feedback &amp; Result</h1>
  <p>Hi <strong>{{.CandidateName}}</strong>,</p>
  <p><strong>{{.InterviewerName}}</strong> has completed the evaluation for your interview:
  <strong>{{.InterviewTitle}}</strong></p>
  <div style="background: #f9f9f9; padding: 20px; border-radius: 8px; text-align: center;">
    {{if .Passed}}<h2 style="color: #10B981;">PASSED</h2>{{else}}<h2 style="color: #EF4444;">NOT PASSED</h2>{{end}}
    <p><strong>Reviewed by:</strong> {{.InterviewerName}}</p>
  </div>
  <blockquote style="border-left: 4px solid #8B5CF6; padding-left: 16px; font-style: italic;">{{.Feedback}}</blockquote>
  {{if .Passed}}
  <p>Congratulations! Our team will contact you shortly regarding the next steps.</p>
  {{else}}
  <p>Thank you for your time and effort. We encourage you to keep developing your skills and apply for future opportunities.</p>
  {{end}}
  <p>Best regards,<br><strong>The InterLink Team</strong></p>
  <p style="color: #666; font-size: 13px;">This is an automated message. Please do not reply to this email.</p>
</div>
`))

var resultTmpl = template.Must(template.New("result").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
  <h1>{{if .Passed}}Congratulations!{{else}}Interview Result{{end}}</h1>
  <p>Hi <strong>{{.CandidateName}}</strong>,</p>
  <p>Your interview result for <strong>{{.InterviewTitle}}</strong> has been reviewed.</p>
  <div style="background: #f9f9f9; padding: 20px; border-radius: 8px; text-align: center;">
    {{if .Passed}}<h2 style="color: #10B981;">PASSED</h2>{{else}}<h2 style="color: #EF4444;">NOT PASSED</h2>{{end}}
    <p><strong>Rating:</strong> {{.Rating}}/5</p>
    <p><strong>Reviewed by:</strong> {{.InterviewerName}}</p>
  </div>
  {{if .Feedback}}<blockquote style="border-left: 4px solid #8B5CF6; padding-left: 16px; font-style: italic;">{{.Feedback}}</blockquote>{{end}}
  {{if .Passed}}
  <p>Congratulations on your achievement! Our team will contact you shortly regarding the next steps.</p>
  {{else}}
  <p>Thank you for your time and effort. We encourage you to apply for future opportunities that match your skills.</p>
  {{end}}
  <p>Best regards,<br><strong>The InterLink Team</strong></p>
  <p style="color: #666; font-size: 13px;">This is an automated message. Please do not reply to this email.</p>
</div>
`))
