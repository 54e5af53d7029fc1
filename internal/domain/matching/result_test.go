package matching

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func candidates(ids ...uuid.UUID) []CandidateJob {
	out := make([]CandidateJob, 0, len(ids))
	for _, id := range ids {
		out = append(out, CandidateJob{ID: id, Title: "Job"})
	}
	return out
}

func TestParseReply_MatchedShape(t *testing.T) {
	jobID := uuid.New()
	text := fmt.Sprintf(`{"matchedJob":{"id":%q,"title":"Backend"},"score":82,"explanation":"strong overlap"}`, jobID)

	r, err := ParseReply(text, candidates(jobID))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !r.Matched() || r.JobID != jobID || r.Score != 82 {
		t.Fatalf("unexpected reply: %+v", r)
	}
}

func TestParseReply_NullScoreShape(t *testing.T) {
	r, err := ParseReply(`{"score":null,"explanation":"nothing fits"}`, candidates(uuid.New()))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r.Matched() {
		t.Fatalf("null-score reply must not match")
	}
	if r.Explanation != "nothing fits" {
		t.Fatalf("unexpected explanation %q", r.Explanation)
	}
}

func TestParseReply_FencedJSON(t *testing.T) {
	jobID := uuid.New()
	text := fmt.Sprintf("```json\n{\"matchedJob\":{\"id\":%q,\"title\":\"x\"},\"score\":50,\"explanation\":\"ok\"}\n```", jobID)
	if _, err := ParseReply(text, candidates(jobID)); err != nil {
		t.Fatalf("fenced JSON should parse, got %v", err)
	}
}

func TestParseReply_Malformed(t *testing.T) {
	jobID := uuid.New()
	cases := map[string]string{
		"not json":                 "the best job is Backend Engineer",
		"empty explanation":        fmt.Sprintf(`{"matchedJob":{"id":%q,"title":"x"},"score":50,"explanation":""}`, jobID),
		"null score with job":      fmt.Sprintf(`{"matchedJob":{"id":%q,"title":"x"},"score":null,"explanation":"e"}`, jobID),
		"score without job":        `{"score":50,"explanation":"e"}`,
		"score above range":        fmt.Sprintf(`{"matchedJob":{"id":%q,"title":"x"},"score":101,"explanation":"e"}`, jobID),
		"negative score":           fmt.Sprintf(`{"matchedJob":{"id":%q,"title":"x"},"score":-1,"explanation":"e"}`, jobID),
		"invalid job id":           `{"matchedJob":{"id":"not-a-uuid","title":"x"},"score":50,"explanation":"e"}`,
		"job not in candidate set": fmt.Sprintf(`{"matchedJob":{"id":%q,"title":"x"},"score":50,"explanation":"e"}`, uuid.New()),
	}

	for name, text := range cases {
		if _, err := ParseReply(text, candidates(jobID)); !errors.Is(err, ErrMalformedReply) {
			t.Fatalf("%s: expected ErrMalformedReply, got %v", name, err)
		}
	}
}
