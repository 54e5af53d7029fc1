// Package importer turns an external job posting page into a draft job.
// The draft is returned to the recruiter for review; nothing is persisted
// here.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"talenthub/internal/infrastructure/llm"
	"talenthub/internal/repository"

	"github.com/gocolly/colly/v2"
)

var (
	ErrInvalidURL    = errors.New("importer: invalid posting url")
	ErrEmptyPage     = errors.New("importer: page has no readable text")
	ErrUnusableDraft = errors.New("importer: model returned an unusable draft")
)

const extractSystemPrompt = `You extract structured job postings from raw page text. Reply with a single JSON object and nothing else, using exactly these keys:

{"title": string, "description": string, "hard_skills": [string], "soft_skills": [string], "experience_level": string, "industry": string, "location": string, "salary_min": number, "salary_max": number}

Rules:
- "experience_level" must be one of: Internship, Junior, Mid-Level, Senior, Lead. Pick the closest fit.
- Use 0 for unknown salary bounds and "" for unknown text fields.
- "description" is a concise plain-text summary of the role, at most three paragraphs.
- Never invent skills that the text does not mention.`

// maxPageText keeps oversized pages from blowing the prompt budget.
const maxPageText = 20000

// Draft is the extracted posting. It mirrors the writable job fields so
// the caller can feed it straight into job creation after review.
type Draft struct {
	SourceURL       string   `json:"source_url"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	HardSkills      []string `json:"hard_skills"`
	SoftSkills      []string `json:"soft_skills"`
	ExperienceLevel string   `json:"experience_level"`
	Industry        string   `json:"industry"`
	Location        string   `json:"location"`
	SalaryMin       int      `json:"salary_min"`
	SalaryMax       int      `json:"salary_max"`
}

type Importer struct {
	llm llm.Client

	// fetch is swappable in tests; the default scrapes with colly.
	fetch func(ctx context.Context, postingURL string) (string, error)
}

func New(llmClient llm.Client) *Importer {
	i := &Importer{llm: llmClient}
	i.fetch = i.fetchPageText
	return i
}

// Import fetches the posting page and asks the model to lift a structured
// draft out of it.
func (i *Importer) Import(ctx context.Context, postingURL string) (Draft, error) {
	u, err := url.Parse(strings.TrimSpace(postingURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Draft{}, ErrInvalidURL
	}

	text, err := i.fetch(ctx, u.String())
	if err != nil {
		return Draft{}, fmt.Errorf("fetch posting: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Draft{}, ErrEmptyPage
	}
	if len(text) > maxPageText {
		text = text[:maxPageText]
	}

	raw, err := i.llm.Complete(ctx, extractSystemPrompt, "Page text:\n\n"+text)
	if err != nil {
		return Draft{}, fmt.Errorf("extract posting: %w", err)
	}

	d, err := parseDraft(raw)
	if err != nil {
		return Draft{}, err
	}
	d.SourceURL = u.String()
	return d, nil
}

const (
	batchWorkers = 4
	batchMaxURLs = 20
)

// BatchItem is the per-URL outcome of a batch import. Exactly one of Draft
// and Error is set.
type BatchItem struct {
	URL   string `json:"url"`
	Draft *Draft `json:"draft,omitempty"`
	Error string `json:"error,omitempty"`
}

var ErrTooManyURLs = errors.New("importer: too many urls in one batch")

// ImportBatch imports up to batchMaxURLs postings concurrently. One bad URL
// fails its own item only; results keep the input order.
func (i *Importer) ImportBatch(ctx context.Context, urls []string) ([]BatchItem, error) {
	if len(urls) == 0 {
		return []BatchItem{}, nil
	}
	if len(urls) > batchMaxURLs {
		return nil, ErrTooManyURLs
	}

	items := make([]BatchItem, len(urls))
	pool := newWorkerPool(batchWorkers, len(urls))
	pool.setRateLimit(2)
	results := pool.run(ctx)

	for idx, u := range urls {
		idx, u := idx, u
		pool.submit(func(ctx context.Context) error {
			d, err := i.Import(ctx, u)
			if err != nil {
				items[idx] = BatchItem{URL: u, Error: err.Error()}
				return err
			}
			items[idx] = BatchItem{URL: u, Draft: &d}
			return nil
		})
	}
	pool.close()
	for range results {
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (i *Importer) fetchPageText(ctx context.Context, postingURL string) (string, error) {
	c := colly.NewCollector(colly.MaxDepth(1))
	c.SetRequestTimeout(20 * time.Second)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, Delay: 300 * time.Millisecond})

	var (
		text     strings.Builder
		fetchErr error
	)
	c.OnRequest(func(r *colly.Request) {
		select {
		case <-ctx.Done():
			r.Abort()
			fetchErr = ctx.Err()
		default:
		}
		r.Headers.Set("User-Agent", "Mozilla/5.0 (compatible; TalentHubImporter/1.0)")
	})
	c.OnHTML("script, style, nav, footer", func(e *colly.HTMLElement) {
		e.DOM.Remove()
	})
	c.OnHTML("body", func(e *colly.HTMLElement) {
		text.WriteString(e.Text)
	})
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(postingURL); err != nil {
		return "", err
	}
	c.Wait()
	if fetchErr != nil {
		return "", fetchErr
	}
	return text.String(), nil
}

// parseDraft accepts only a well-formed draft object. Markdown fences are
// tolerated since models add them even when told not to.
func parseDraft(raw string) (Draft, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	var d Draft
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return Draft{}, fmt.Errorf("%w: %v", ErrUnusableDraft, err)
	}
	if strings.TrimSpace(d.Title) == "" {
		return Draft{}, fmt.Errorf("%w: missing title", ErrUnusableDraft)
	}
	if !repository.ValidExperienceLevel(d.ExperienceLevel) {
		d.ExperienceLevel = ""
	}
	if d.SalaryMin < 0 {
		d.SalaryMin = 0
	}
	if d.SalaryMax < 0 {
		d.SalaryMax = 0
	}
	if d.HardSkills == nil {
		d.HardSkills = []string{}
	}
	if d.SoftSkills == nil {
		d.SoftSkills = []string{}
	}
	return d, nil
}
