package emails

import (
	"strings"
	"testing"
)

func TestScheduledTemplateRenders(t *testing.T) {
	body, err := render(scheduledTmpl, ScheduledData{
		CandidateName:  "Ada",
		InterviewTitle: "Backend Engineer",
		InterviewDate:  "Monday, September 1, 2025",
		InterviewTime:  "10:00 AM UTC",
		MeetingLink:    "https://example.com/call/abc",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Ada", "Backend Engineer", "https://example.com/call/abc"} {
		if !strings.Contains(body, want) {
			t.Fatalf("rendered body missing %q", want)
		}
	}
}

func TestScheduledTemplateOmitsEmptyMeetingLink(t *testing.T) {
	body, err := render(scheduledTmpl, ScheduledData{CandidateName: "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, "Meeting Link") {
		t.Fatal("meeting link block should be omitted when empty")
	}
}

func TestFeedbackTemplatePassFailBranches(t *testing.T) {
	passed, err := render(feedbackTmpl, FeedbackData{CandidateName: "Ada", Passed: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(passed, "PASSED") || strings.Contains(passed, "NOT PASSED") {
		t.Fatal("expected the passed branch")
	}

	failed, err := render(feedbackTmpl, FeedbackData{CandidateName: "Ada", Passed: false})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(failed, "NOT PASSED") {
		t.Fatal("expected the not-passed branch")
	}
}

func TestResultTemplateEscapesFeedback(t *testing.T) {
	body, err := render(resultTmpl, ResultData{
		CandidateName: "Ada",
		Feedback:      "<script>alert(1)</script>",
		Rating:        4,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Fatal("feedback must be HTML-escaped")
	}
}
