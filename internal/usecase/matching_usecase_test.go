package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"

	"talenthub/internal/domain/resume"
	"talenthub/internal/repository"

	"github.com/google/uuid"
)

func testLogger() *log.Logger {
	return log.New(&strings.Builder{}, "", 0)
}

func activeJob(title string) repository.Job {
	return repository.Job{
		ID:              uuid.New(),
		CompanyID:       uuid.New(),
		Title:           title,
		HardSkills:      []string{"Go"},
		ExperienceLevel: "Mid-Level",
		Status:          repository.JobStatusActive,
	}
}

func matchedReply(jobID uuid.UUID, score int) string {
	return fmt.Sprintf(`{"matchedJob":{"id":%q,"title":"x"},"score":%d,"explanation":"good fit"}`, jobID, score)
}

func TestMatching_GenerateMatch_Success(t *testing.T) {
	userID := uuid.New()
	rs := resume.Resume{ID: uuid.New(), UserID: userID, Title: "CV", Skills: []string{"Go"}}
	job := activeJob("Backend Engineer")

	resumes := newFakeResumeRepo(rs)
	jobs := newFakeJobRepo(job)
	matches := newFakeMatchRepo()
	model := &fakeLLM{completions: []string{matchedReply(job.ID, 87)}}
	notifier := &fakeNotifier{}

	uc := NewMatchingUsecase(resumes, jobs, matches, model, notifier, testLogger())

	res, err := uc.GenerateMatch(context.Background(), userID, rs.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(res.Matches))
	}
	if res.Matches[0].Match.JobID != job.ID || res.Matches[0].Match.MatchScore != 87 {
		t.Fatalf("unexpected match: %+v", res.Matches[0].Match)
	}
	if len(matches.created) != 1 {
		t.Fatalf("expected 1 persisted match, got %d", len(matches.created))
	}
	if len(notifier.calls) != 1 || notifier.calls[0].UserID != userID {
		t.Fatalf("expected one notification for the user, got %+v", notifier.calls)
	}
}

func TestMatching_GenerateMatch_ExcludesAlreadyMatchedJobs(t *testing.T) {
	userID := uuid.New()
	rs := resume.Resume{ID: uuid.New(), UserID: userID, Skills: []string{"Go"}}
	matchedJob := activeJob("Old Match")
	freshJob := activeJob("Fresh Job")

	jobs := newFakeJobRepo(matchedJob, freshJob)
	matches := newFakeMatchRepo(matchedJob.ID)
	model := &fakeLLM{completions: []string{matchedReply(freshJob.ID, 70)}}

	uc := NewMatchingUsecase(newFakeResumeRepo(rs), jobs, matches, model, nil, testLogger())

	res, err := uc.GenerateMatch(context.Background(), userID, rs.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Matches) != 1 || res.Matches[0].Match.JobID != freshJob.ID {
		t.Fatalf("expected a match on the fresh job, got %+v", res.Matches)
	}
	if strings.Contains(model.lastPrompt, matchedJob.ID.String()) {
		t.Fatalf("already-matched job leaked into the prompt")
	}
}

func TestMatching_GenerateMatch_NoCandidates_SkipsModel(t *testing.T) {
	userID := uuid.New()
	rs := resume.Resume{ID: uuid.New(), UserID: userID}
	job := activeJob("Only Job")

	model := &fakeLLM{}
	uc := NewMatchingUsecase(newFakeResumeRepo(rs), newFakeJobRepo(job), newFakeMatchRepo(job.ID), model, nil, testLogger())

	res, err := uc.GenerateMatch(context.Background(), userID, rs.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(res.Matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(res.Matches))
	}
	if res.Explanation == "" {
		t.Fatalf("expected an explanation for the empty run")
	}
	if model.completeCnt != 0 {
		t.Fatalf("model should not be called when no candidates remain")
	}
}

func TestMatching_GenerateMatch_MalformedReply_SafeNoMatch(t *testing.T) {
	userID := uuid.New()
	rs := resume.Resume{ID: uuid.New(), UserID: userID}
	job := activeJob("Backend Engineer")

	matches := newFakeMatchRepo()
	model := &fakeLLM{completions: []string{"not json at all"}}
	uc := NewMatchingUsecase(newFakeResumeRepo(rs), newFakeJobRepo(job), matches, model, nil, testLogger())

	res, err := uc.GenerateMatch(context.Background(), userID, rs.ID)
	if err != nil {
		t.Fatalf("malformed reply must not surface as an error, got %v", err)
	}
	if len(res.Matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(res.Matches))
	}
	if len(matches.created) != 0 {
		t.Fatalf("no match row may be written for a malformed reply")
	}
}

func TestMatching_GenerateMatch_TransportErrorPropagates(t *testing.T) {
	userID := uuid.New()
	rs := resume.Resume{ID: uuid.New(), UserID: userID}
	job := activeJob("Backend Engineer")

	model := &fakeLLM{completeErr: errors.New("connection refused")}
	uc := NewMatchingUsecase(newFakeResumeRepo(rs), newFakeJobRepo(job), newFakeMatchRepo(), model, nil, testLogger())

	if _, err := uc.GenerateMatch(context.Background(), userID, rs.ID); err == nil {
		t.Fatalf("expected transport error to propagate")
	}
}

func TestMatching_GenerateMatch_DuplicateMatch_ConcurrentRun(t *testing.T) {
	userID := uuid.New()
	rs := resume.Resume{ID: uuid.New(), UserID: userID}
	job := activeJob("Backend Engineer")

	matches := newFakeMatchRepo()
	matches.createErr = repository.ErrDuplicateMatch
	model := &fakeLLM{completions: []string{matchedReply(job.ID, 90)}}
	uc := NewMatchingUsecase(newFakeResumeRepo(rs), newFakeJobRepo(job), matches, model, nil, testLogger())

	res, err := uc.GenerateMatch(context.Background(), userID, rs.ID)
	if err != nil {
		t.Fatalf("duplicate insert must resolve to a no-match result, got %v", err)
	}
	if len(res.Matches) != 0 || res.Explanation == "" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestMatching_GenerateMatch_OtherUsersResume(t *testing.T) {
	owner := uuid.New()
	rs := resume.Resume{ID: uuid.New(), UserID: owner}

	uc := NewMatchingUsecase(newFakeResumeRepo(rs), newFakeJobRepo(), newFakeMatchRepo(), &fakeLLM{}, nil, testLogger())

	_, err := uc.GenerateMatch(context.Background(), uuid.New(), rs.ID)
	if !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound for another user's resume, got %v", err)
	}
}
