package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"talenthub/internal/infrastructure/llm"
)

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Complete(context.Context, string, string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeLLM) Chat(context.Context, []llm.Message, []llm.ToolDef) (llm.Message, error) {
	return llm.Message{}, errors.New("not used")
}

const draftJSON = `{
	"title": "Backend Engineer",
	"description": "Build Go services.",
	"hard_skills": ["Go", "PostgreSQL"],
	"soft_skills": [],
	"experience_level": "Mid-Level",
	"industry": "Software",
	"location": "Remote",
	"salary_min": 0,
	"salary_max": 0
}`

func stubFetch(text string, err error) func(context.Context, string) (string, error) {
	return func(context.Context, string) (string, error) {
		return text, err
	}
}

func TestImporter_Import_Success(t *testing.T) {
	model := &fakeLLM{reply: draftJSON}
	imp := New(model)
	imp.fetch = stubFetch("We are hiring a Backend Engineer...", nil)

	d, err := imp.Import(context.Background(), "https://jobs.example.com/backend")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.Title != "Backend Engineer" || d.ExperienceLevel != "Mid-Level" {
		t.Fatalf("unexpected draft %+v", d)
	}
	if d.SourceURL != "https://jobs.example.com/backend" {
		t.Fatalf("source url not recorded: %q", d.SourceURL)
	}
}

func TestImporter_Import_InvalidURL(t *testing.T) {
	imp := New(&fakeLLM{})
	for _, u := range []string{"", "not a url", "ftp://example.com/x", "https://"} {
		if _, err := imp.Import(context.Background(), u); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("%q: expected ErrInvalidURL, got %v", u, err)
		}
	}
}

func TestImporter_Import_EmptyPage(t *testing.T) {
	model := &fakeLLM{reply: draftJSON}
	imp := New(model)
	imp.fetch = stubFetch("   \n\t ", nil)

	if _, err := imp.Import(context.Background(), "https://jobs.example.com/x"); !errors.Is(err, ErrEmptyPage) {
		t.Fatalf("expected ErrEmptyPage, got %v", err)
	}
	if model.calls != 0 {
		t.Fatalf("model must not be called for an empty page")
	}
}

func TestImporter_Import_TruncatesLongPages(t *testing.T) {
	model := &fakeLLM{reply: draftJSON}
	imp := New(model)
	imp.fetch = stubFetch(strings.Repeat("a", maxPageText*2), nil)

	if _, err := imp.Import(context.Background(), "https://jobs.example.com/x"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestParseDraft(t *testing.T) {
	d, err := parseDraft("```json\n" + draftJSON + "\n```")
	if err != nil {
		t.Fatalf("fenced draft should parse, got %v", err)
	}
	if d.HardSkills == nil || d.SoftSkills == nil {
		t.Fatalf("skill slices must never be nil")
	}

	if _, err := parseDraft("no json here"); !errors.Is(err, ErrUnusableDraft) {
		t.Fatalf("expected ErrUnusableDraft, got %v", err)
	}
	if _, err := parseDraft(`{"title":""}`); !errors.Is(err, ErrUnusableDraft) {
		t.Fatalf("missing title must be unusable, got %v", err)
	}

	d, err = parseDraft(`{"title":"x","experience_level":"Wizard","salary_min":-5}`)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if d.ExperienceLevel != "" {
		t.Fatalf("unknown level must be cleared, got %q", d.ExperienceLevel)
	}
	if d.SalaryMin != 0 {
		t.Fatalf("negative salary must be clamped, got %d", d.SalaryMin)
	}
}

func TestImporter_ImportBatch(t *testing.T) {
	model := &fakeLLM{reply: draftJSON}
	imp := New(model)
	imp.fetch = func(_ context.Context, u string) (string, error) {
		if strings.Contains(u, "bad") {
			return "", errors.New("boom")
		}
		return "hiring", nil
	}

	items, err := imp.ImportBatch(context.Background(), []string{
		"https://jobs.example.com/one",
		"https://jobs.example.com/bad",
		"https://jobs.example.com/two",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Draft == nil || items[2].Draft == nil {
		t.Fatalf("good URLs must yield drafts: %+v", items)
	}
	if items[1].Draft != nil || items[1].Error == "" {
		t.Fatalf("bad URL must carry an error only: %+v", items[1])
	}
}

func TestImporter_ImportBatch_TooMany(t *testing.T) {
	imp := New(&fakeLLM{})
	urls := make([]string, batchMaxURLs+1)
	for i := range urls {
		urls[i] = "https://jobs.example.com/x"
	}
	if _, err := imp.ImportBatch(context.Background(), urls); !errors.Is(err, ErrTooManyURLs) {
		t.Fatalf("expected ErrTooManyURLs, got %v", err)
	}
}
