package usecase

import (
	"context"
	"errors"
	"testing"

	"talenthub/internal/domain/resume"

	"github.com/google/uuid"
)

func TestResumes_Create_ComputesCompletion(t *testing.T) {
	repo := newFakeResumeRepo()
	uc := NewResumeUsecase(repo)

	in := resume.Resume{
		Title:        "My CV",
		PersonalInfo: resume.PersonalInfo{FullName: "Ada Lovelace"},
	}
	out, err := uc.Create(context.Background(), uuid.New(), in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.CompletionPercentage != 7 {
		t.Fatalf("personal info alone should score 7, got %d", out.CompletionPercentage)
	}
}

func TestResumes_Update_RecomputesCompletion(t *testing.T) {
	userID := uuid.New()
	rs := resume.Resume{
		ID:                   uuid.New(),
		UserID:               userID,
		Title:                "My CV",
		PersonalInfo:         resume.PersonalInfo{FullName: "Ada"},
		CompletionPercentage: 7,
	}
	repo := newFakeResumeRepo(rs)
	uc := NewResumeUsecase(repo)

	rs.Skills = []string{"Go", "SQL"}
	rs.Summary = "Backend engineer."
	out, err := uc.Update(context.Background(), userID, rs.ID, rs)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.CompletionPercentage != 23 {
		t.Fatalf("three sections should score 23, got %d", out.CompletionPercentage)
	}

	// Saving again without changes must not move the percentage.
	again, err := uc.Update(context.Background(), userID, rs.ID, out)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if again.CompletionPercentage != out.CompletionPercentage {
		t.Fatalf("unchanged resume must keep its percentage: %d vs %d", again.CompletionPercentage, out.CompletionPercentage)
	}
}

func TestResumes_Get_OtherUsersResumeHidden(t *testing.T) {
	rs := resume.Resume{ID: uuid.New(), UserID: uuid.New(), Title: "Private"}
	uc := NewResumeUsecase(newFakeResumeRepo(rs))

	if _, err := uc.Get(context.Background(), uuid.New(), rs.ID); !errors.Is(err, ErrResumeNotFound) {
		t.Fatalf("expected ErrResumeNotFound, got %v", err)
	}
}
