package usecase

import (
	"context"
	"time"

	"talenthub/internal/domain/resume"
	"talenthub/internal/infrastructure/llm"
	"talenthub/internal/repository"

	"github.com/google/uuid"
)

type fakeResumeRepo struct {
	byID    map[uuid.UUID]resume.Resume
	created []resume.Resume
	updated []resume.Resume
	err     error
}

func newFakeResumeRepo(resumes ...resume.Resume) *fakeResumeRepo {
	r := &fakeResumeRepo{byID: map[uuid.UUID]resume.Resume{}}
	for _, rs := range resumes {
		r.byID[rs.ID] = rs
	}
	return r
}

func (r *fakeResumeRepo) Create(_ context.Context, rs resume.Resume) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, rs)
	r.byID[rs.ID] = rs
	return nil
}

func (r *fakeResumeRepo) GetByID(_ context.Context, id uuid.UUID) (resume.Resume, error) {
	if r.err != nil {
		return resume.Resume{}, r.err
	}
	rs, ok := r.byID[id]
	if !ok {
		return resume.Resume{}, repository.ErrResumeNotFound
	}
	return rs, nil
}

func (r *fakeResumeRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []resume.Resume{}
	for _, rs := range r.byID {
		if rs.UserID == userID {
			out = append(out, rs)
		}
	}
	return out, nil
}

func (r *fakeResumeRepo) Update(_ context.Context, rs resume.Resume) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byID[rs.ID]; !ok {
		return repository.ErrResumeNotFound
	}
	r.updated = append(r.updated, rs)
	r.byID[rs.ID] = rs
	return nil
}

func (r *fakeResumeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrResumeNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeJobRepo struct {
	byID   map[uuid.UUID]repository.Job
	active []repository.Job
	err    error
}

func newFakeJobRepo(jobs ...repository.Job) *fakeJobRepo {
	r := &fakeJobRepo{byID: map[uuid.UUID]repository.Job{}}
	for _, j := range jobs {
		r.byID[j.ID] = j
		if j.Status == repository.JobStatusActive {
			r.active = append(r.active, j)
		}
	}
	return r
}

func (r *fakeJobRepo) Create(_ context.Context, j repository.Job) error {
	if r.err != nil {
		return r.err
	}
	r.byID[j.ID] = j
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Job, error) {
	if r.err != nil {
		return repository.Job{}, r.err
	}
	j, ok := r.byID[id]
	if !ok {
		return repository.Job{}, repository.ErrJobNotFound
	}
	return j, nil
}

func (r *fakeJobRepo) List(_ context.Context, _ repository.JobListFilter) ([]repository.Job, error) {
	return r.active, r.err
}

func (r *fakeJobRepo) ListActive(_ context.Context) ([]repository.Job, error) {
	return r.active, r.err
}

func (r *fakeJobRepo) Update(_ context.Context, j repository.Job) error {
	r.byID[j.ID] = j
	return r.err
}

func (r *fakeJobRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	j, ok := r.byID[id]
	if !ok {
		return repository.ErrJobNotFound
	}
	j.Status = status
	r.byID[id] = j
	return r.err
}

func (r *fakeJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return r.err
}

func (r *fakeJobRepo) IncrementViews(context.Context, uuid.UUID) error            { return r.err }
func (r *fakeJobRepo) IncrementApplicationCount(context.Context, uuid.UUID) error { return r.err }
func (r *fakeJobRepo) MarkEndingSoon(context.Context, time.Duration) (int64, error) {
	return 0, r.err
}
func (r *fakeJobRepo) CloseExpired(context.Context) (int64, error) { return 0, r.err }

type fakeMatchRepo struct {
	matched   map[uuid.UUID]struct{}
	created   []repository.Match
	createErr error
}

func newFakeMatchRepo(matchedJobIDs ...uuid.UUID) *fakeMatchRepo {
	r := &fakeMatchRepo{matched: map[uuid.UUID]struct{}{}}
	for _, id := range matchedJobIDs {
		r.matched[id] = struct{}{}
	}
	return r
}

func (r *fakeMatchRepo) Create(_ context.Context, m repository.Match) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, m)
	r.matched[m.JobID] = struct{}{}
	return nil
}

func (r *fakeMatchRepo) GetByID(context.Context, uuid.UUID) (repository.Match, error) {
	return repository.Match{}, repository.ErrMatchNotFound
}

func (r *fakeMatchRepo) ListByUserID(context.Context, uuid.UUID) ([]repository.Match, error) {
	return r.created, nil
}

func (r *fakeMatchRepo) MatchedJobIDs(context.Context, uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return r.matched, nil
}

type fakeCompanyRepo struct {
	byID map[uuid.UUID]repository.Company
}

func newFakeCompanyRepo(companies ...repository.Company) *fakeCompanyRepo {
	r := &fakeCompanyRepo{byID: map[uuid.UUID]repository.Company{}}
	for _, c := range companies {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCompanyRepo) Create(_ context.Context, c repository.Company) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Company, error) {
	c, ok := r.byID[id]
	if !ok {
		return repository.Company{}, repository.ErrCompanyNotFound
	}
	return c, nil
}

func (r *fakeCompanyRepo) GetByOwnerID(_ context.Context, ownerID uuid.UUID) (repository.Company, error) {
	for _, c := range r.byID {
		if c.OwnerID == ownerID {
			return c, nil
		}
	}
	return repository.Company{}, repository.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) List(context.Context, int, int) ([]repository.Company, error) {
	out := []repository.Company{}
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCompanyRepo) Update(_ context.Context, c repository.Company) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

type fakeApplicationRepo struct {
	byID      map[uuid.UUID]repository.Application
	createErr error
}

func newFakeApplicationRepo(apps ...repository.Application) *fakeApplicationRepo {
	r := &fakeApplicationRepo{byID: map[uuid.UUID]repository.Application{}}
	for _, a := range apps {
		r.byID[a.ID] = a
	}
	return r
}

func (r *fakeApplicationRepo) Create(_ context.Context, a repository.Application) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[a.ID] = a
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Application, error) {
	a, ok := r.byID[id]
	if !ok {
		return repository.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (r *fakeApplicationRepo) ListByJobID(_ context.Context, jobID uuid.UUID) ([]repository.Application, error) {
	out := []repository.Application{}
	for _, a := range r.byID {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]repository.Application, error) {
	out := []repository.Application{}
	for _, a := range r.byID {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string, history []repository.StatusChange) error {
	a, ok := r.byID[id]
	if !ok {
		return repository.ErrApplicationNotFound
	}
	a.Status = status
	a.StatusHistory = history
	r.byID[id] = a
	return nil
}

// fakeLLM records calls and replays scripted responses.
type fakeLLM struct {
	completions  []string
	chatReplies  []llm.Message
	completeErr  error
	chatErr      error
	completeCnt  int
	chatCnt      int
	lastPrompt   string
	lastMessages []llm.Message
}

func (f *fakeLLM) Complete(_ context.Context, _ string, prompt string) (string, error) {
	f.completeCnt++
	f.lastPrompt = prompt
	if f.completeErr != nil {
		return "", f.completeErr
	}
	if len(f.completions) == 0 {
		return "", llm.ErrEmptyCompletion
	}
	out := f.completions[0]
	f.completions = f.completions[1:]
	return out, nil
}

func (f *fakeLLM) Chat(_ context.Context, msgs []llm.Message, _ []llm.ToolDef) (llm.Message, error) {
	f.chatCnt++
	f.lastMessages = msgs
	if f.chatErr != nil {
		return llm.Message{}, f.chatErr
	}
	if len(f.chatReplies) == 0 {
		return llm.Message{}, llm.ErrEmptyCompletion
	}
	out := f.chatReplies[0]
	f.chatReplies = f.chatReplies[1:]
	return out, nil
}

type notifyCall struct {
	UserID uuid.UUID
	Type   string
	Title  string
	Body   string
}

type fakeNotifier struct {
	calls []notifyCall
}

func (f *fakeNotifier) Notify(_ context.Context, userID uuid.UUID, typ, title, body string) {
	f.calls = append(f.calls, notifyCall{UserID: userID, Type: typ, Title: title, Body: body})
}
