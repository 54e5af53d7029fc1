package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"talenthub/internal/domain/matching"
	"talenthub/internal/infrastructure/llm"
	"talenthub/internal/repository"

	"github.com/google/uuid"
)

const noUnmatchedJobsExplanation = "Every active job has already been matched for this user. Update the resume or wait for new openings to get a fresh match."

// MatchResult is the outcome of one matching run. Matches holds at most one
// entry; when it is empty, Explanation says why.
type MatchResult struct {
	Matches     []MatchedJob `json:"matches"`
	Explanation string       `json:"explanation"`
}

type MatchedJob struct {
	Match repository.Match `json:"match"`
	Job   repository.Job   `json:"job"`
}

type MatchingUsecase interface {
	GenerateMatch(ctx context.Context, userID, resumeID uuid.UUID) (MatchResult, error)
	ListMatches(ctx context.Context, userID uuid.UUID) ([]MatchedJob, error)
}

type Matching struct {
	resumes  repository.ResumeRepository
	jobs     repository.JobRepository
	matches  repository.MatchRepository
	llm      llm.Client
	notifier Notifier
	logger   *log.Logger
}

func NewMatchingUsecase(
	resumes repository.ResumeRepository,
	jobs repository.JobRepository,
	matches repository.MatchRepository,
	llmClient llm.Client,
	notifier Notifier,
	logger *log.Logger,
) *Matching {
	return &Matching{
		resumes:  resumes,
		jobs:     jobs,
		matches:  matches,
		llm:      llmClient,
		notifier: notifier,
		logger:   logger,
	}
}

// GenerateMatch finds the single best-fitting active job the user has not
// been matched to yet, scores it through the model, and persists the result.
// One model round trip; transport and storage errors propagate, while a
// malformed model reply degrades to a no-match result.
func (u *Matching) GenerateMatch(ctx context.Context, userID, resumeID uuid.UUID) (MatchResult, error) {
	if userID == uuid.Nil {
		return MatchResult{}, ErrUnauthorized
	}

	rs, err := u.resumes.GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return MatchResult{}, ErrResumeNotFound
		}
		return MatchResult{}, fmt.Errorf("load resume: %w", err)
	}
	if rs.UserID != userID {
		return MatchResult{}, ErrResumeNotFound
	}

	candidates, jobsByID, err := u.candidateJobs(ctx, userID)
	if err != nil {
		return MatchResult{}, err
	}
	if len(candidates) == 0 {
		return MatchResult{
			Matches:     []MatchedJob{},
			Explanation: noUnmatchedJobsExplanation,
		}, nil
	}

	prompt, err := matching.BuildPrompt(rs, candidates)
	if err != nil {
		return MatchResult{}, err
	}

	raw, err := u.llm.Complete(ctx, matching.SystemPrompt(), prompt)
	if err != nil {
		return MatchResult{}, fmt.Errorf("matching completion: %w", err)
	}

	reply, err := matching.ParseReply(raw, candidates)
	if err != nil {
		// Bad model output is not the caller's problem; resolve the run
		// to a safe no-match instead of failing or retrying.
		if u.logger != nil {
			u.logger.Printf("matching: malformed reply | user=%s err=%v", userID, err)
		}
		return MatchResult{
			Matches:     []MatchedJob{},
			Explanation: "The matching model returned an unusable answer. No match was recorded; try again.",
		}, nil
	}

	if !reply.Matched() {
		return MatchResult{
			Matches:     []MatchedJob{},
			Explanation: reply.Explanation,
		}, nil
	}

	m := repository.Match{
		ID:          uuid.New(),
		UserID:      userID,
		ResumeID:    rs.ID,
		JobID:       reply.JobID,
		MatchScore:  reply.Score,
		Explanation: reply.Explanation,
	}
	if err := u.matches.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrDuplicateMatch) {
			// A concurrent run matched the same job first; surface its
			// outcome rather than an error.
			return MatchResult{
				Matches:     []MatchedJob{},
				Explanation: "This job was matched by a concurrent request. Re-run to match against the remaining jobs.",
			}, nil
		}
		return MatchResult{}, fmt.Errorf("persist match: %w", err)
	}

	job := jobsByID[reply.JobID]
	if u.notifier != nil {
		u.notifier.Notify(ctx, userID, NotificationTypeMatchFound,
			"New job match",
			fmt.Sprintf("Your resume matched %q with a score of %d.", job.Title, reply.Score))
	}

	return MatchResult{
		Matches:     []MatchedJob{{Match: m, Job: job}},
		Explanation: reply.Explanation,
	}, nil
}

func (u *Matching) ListMatches(ctx context.Context, userID uuid.UUID) ([]MatchedJob, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	matches, err := u.matches.ListByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]MatchedJob, 0, len(matches))
	for _, m := range matches {
		job, err := u.jobs.GetByID(ctx, m.JobID)
		if err != nil {
			if errors.Is(err, repository.ErrJobNotFound) {
				continue
			}
			return nil, ErrInternal
		}
		out = append(out, MatchedJob{Match: m, Job: job})
	}
	return out, nil
}

// candidateJobs returns the active jobs that have no match row for the user
// yet, in model-facing form plus a lookup table for the full rows.
func (u *Matching) candidateJobs(ctx context.Context, userID uuid.UUID) ([]matching.CandidateJob, map[uuid.UUID]repository.Job, error) {
	active, err := u.jobs.ListActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list active jobs: %w", err)
	}

	matched, err := u.matches.MatchedJobIDs(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list matched jobs: %w", err)
	}

	candidates := make([]matching.CandidateJob, 0, len(active))
	byID := make(map[uuid.UUID]repository.Job, len(active))
	for _, j := range active {
		if _, ok := matched[j.ID]; ok {
			continue
		}
		candidates = append(candidates, matching.CandidateJob{
			ID:              j.ID,
			Title:           j.Title,
			HardSkills:      j.HardSkills,
			ExperienceLevel: j.ExperienceLevel,
		})
		byID[j.ID] = j
	}
	return candidates, byID, nil
}
