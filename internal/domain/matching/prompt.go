package matching

import (
	"encoding/json"
	"fmt"
	"strings"

	"talenthub/internal/domain/resume"

	"github.com/google/uuid"
)

// CandidateJob is the slice of a job the model is allowed to see.
type CandidateJob struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	HardSkills      []string  `json:"hard_skills"`
	ExperienceLevel string    `json:"experience_level"`
}

const systemPrompt = `You are a recruitment assistant that picks the single best-fitting job for a candidate.

Compare the candidate profile against the listed jobs. Base all reasoning only on the provided text; never invent skills or experience.

Respond with ONLY a JSON object, no markdown, no backticks, no text before or after. Use exactly one of these two shapes:

If no job is a reasonable fit:
{"score": null, "explanation": "<why none of the jobs fit>"}

If one job fits best:
{"matchedJob": {"id": "<job id>", "title": "<job title>"}, "score": <integer 0-100>, "explanation": "<why this job fits>"}`

// BuildPrompt renders the user prompt for one matching round: the resume's
// name, skills and experience titles plus a JSON listing of candidate jobs.
func BuildPrompt(r resume.Resume, jobs []CandidateJob) (string, error) {
	listing, err := json.Marshal(jobs)
	if err != nil {
		return "", fmt.Errorf("marshal candidate jobs: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Candidate: %s\n", r.PersonalInfo.FullName)
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(r.Skills, ", "))
	fmt.Fprintf(&b, "Experience: %s\n", strings.Join(r.ExperienceTitles(), ", "))
	b.WriteString("\nJobs:\n")
	b.Write(listing)

	return b.String(), nil
}

func SystemPrompt() string {
	return systemPrompt
}
