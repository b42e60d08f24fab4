package questions

import (
	"testing"

	"github.com/Priyan1011/remote-interview-platform/internal/models"
)

func TestBankListsAllQuestions(t *testing.T) {
	b := NewBank()
	if len(b.List()) == 0 {
		t.Fatal("bank must not be empty")
	}
	for _, q := range b.List() {
		if q.ID == "" || q.Title == "" {
			t.Fatalf("question missing id or title: %+v", q)
		}
		for _, lang := range []models.Language{models.LangJavaScript, models.LangPython, models.LangJava} {
			if q.StarterCode[lang] == "" {
				t.Fatalf("question %s missing starter code for %s", q.ID, lang)
			}
		}
	}
}

func TestGetKnownAndUnknown(t *testing.T) {
	b := NewBank()
	def := b.Default()

	q, ok := b.Get(def.ID)
	if !ok || q.ID != def.ID {
		t.Fatalf("expected to find %s", def.ID)
	}
	if _, ok := b.Get("no-such-question"); ok {
		t.Fatal("unknown id must not resolve")
	}
}

func TestStarterCodeFallsBackToDefaultQuestion(t *testing.T) {
	b := NewBank()
	want := b.Default().StarterCode[models.LangPython]

	if got := b.StarterCode("no-such-question", models.LangPython); got != want {
		t.Fatalf("expected default question starter code, got %q", got)
	}
}
