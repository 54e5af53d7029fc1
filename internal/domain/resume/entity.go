package resume

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PersonalInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartYear   int    `json:"start_year"`
	EndYear     int    `json:"end_year"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	StartYear   int    `json:"start_year"`
	EndYear     int    `json:"end_year"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   int    `json:"year"`
}

type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type Resume struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Title          string          `json:"title"`
	PersonalInfo   PersonalInfo    `json:"personal_info"`
	Summary        string          `json:"summary"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Certifications []Certification `json:"certifications"`
	Projects       []Project       `json:"projects"`
	Skills         []string        `json:"skills"`
	Languages      []string        `json:"languages"`
	Hobbies        []string        `json:"hobbies"`
	Website        string          `json:"website"`
	LinkedIn       string          `json:"linkedin"`
	GitHub         string          `json:"github"`
	PhotoURL       string          `json:"photo_url"`

	CompletionPercentage int       `json:"completion_percentage"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// sectionCount is the number of tracked sections a resume can fill in.
const sectionCount = 13

// CalculateCompletion counts the non-empty tracked sections and returns
// floor(filled/13*100). Personal info counts once, regardless of how many of
// its fields are set. The result depends only on the resume contents, so
// recomputing it never changes an unmodified resume.
func (r Resume) CalculateCompletion() int {
	filled := 0

	if r.PersonalInfo != (PersonalInfo{}) {
		filled++
	}
	if strings.TrimSpace(r.Summary) != "" {
		filled++
	}
	if len(r.Education) > 0 {
		filled++
	}
	if len(r.Experience) > 0 {
		filled++
	}
	if len(r.Certifications) > 0 {
		filled++
	}
	if len(r.Projects) > 0 {
		filled++
	}
	if len(r.Skills) > 0 {
		filled++
	}
	if len(r.Languages) > 0 {
		filled++
	}
	if len(r.Hobbies) > 0 {
		filled++
	}
	if strings.TrimSpace(r.Website) != "" {
		filled++
	}
	if strings.TrimSpace(r.LinkedIn) != "" {
		filled++
	}
	if strings.TrimSpace(r.GitHub) != "" {
		filled++
	}
	if strings.TrimSpace(r.PhotoURL) != "" {
		filled++
	}

	return filled * 100 / sectionCount
}

// ExperienceTitles lists the role titles, most recent first as stored.
func (r Resume) ExperienceTitles() []string {
	out := make([]string, 0, len(r.Experience))
	for _, e := range r.Experience {
		if strings.TrimSpace(e.Title) == "" {
			continue
		}
		out = append(out, e.Title)
	}
	return out
}
