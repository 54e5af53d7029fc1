package matching

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrMalformedReply = errors.New("malformed model reply")

// Reply is the validated model output: either a scored pick of one of the
// candidate jobs, or an explanation of why nothing fits (JobID == uuid.Nil).
type Reply struct {
	JobID       uuid.UUID
	JobTitle    string
	Score       int
	Explanation string
}

func (r Reply) Matched() bool {
	return r.JobID != uuid.Nil
}

type rawReply struct {
	MatchedJob *struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"matchedJob"`
	Score       *int   `json:"score"`
	Explanation string `json:"explanation"`
}

// ParseReply validates the raw completion text against the two allowed reply
// shapes. A matched reply must name one of the candidate ids and carry a
// score in [0,100]; anything else is ErrMalformedReply so the caller can
// resolve the round to a safe no-match.
func ParseReply(text string, candidates []CandidateJob) (Reply, error) {
	text = strings.TrimSpace(text)
	// Some models wrap JSON in a fenced block despite instructions.
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw rawReply
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return Reply{}, ErrMalformedReply
	}

	if raw.Explanation == "" {
		return Reply{}, ErrMalformedReply
	}

	// Null-score shape: explanation only, no job.
	if raw.Score == nil {
		if raw.MatchedJob != nil {
			return Reply{}, ErrMalformedReply
		}
		return Reply{Explanation: raw.Explanation}, nil
	}

	if raw.MatchedJob == nil {
		return Reply{}, ErrMalformedReply
	}
	if *raw.Score < 0 || *raw.Score > 100 {
		return Reply{}, ErrMalformedReply
	}

	jobID, err := uuid.Parse(raw.MatchedJob.ID)
	if err != nil {
		return Reply{}, ErrMalformedReply
	}

	found := false
	for _, c := range candidates {
		if c.ID == jobID {
			found = true
			break
		}
	}
	if !found {
		return Reply{}, ErrMalformedReply
	}

	return Reply{
		JobID:       jobID,
		JobTitle:    raw.MatchedJob.Title,
		Score:       *raw.Score,
		Explanation: raw.Explanation,
	}, nil
}
