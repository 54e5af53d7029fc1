package resume

import "testing"

func TestCalculateCompletion_Empty(t *testing.T) {
	var r Resume
	if got := r.CalculateCompletion(); got != 0 {
		t.Fatalf("empty resume should score 0, got %d", got)
	}
}

func TestCalculateCompletion_PersonalInfoOnly(t *testing.T) {
	r := Resume{PersonalInfo: PersonalInfo{FullName: "Ada Lovelace"}}
	if got := r.CalculateCompletion(); got != 7 {
		t.Fatalf("personal info only should score 7, got %d", got)
	}
}

func TestCalculateCompletion_PersonalInfoCountsOnce(t *testing.T) {
	one := Resume{PersonalInfo: PersonalInfo{FullName: "Ada"}}
	all := Resume{PersonalInfo: PersonalInfo{
		FullName: "Ada", Email: "ada@example.com", Phone: "+44", Address: "London",
	}}
	if one.CalculateCompletion() != all.CalculateCompletion() {
		t.Fatalf("filling more personal info fields must not change the score")
	}
}

func TestCalculateCompletion_AllSections(t *testing.T) {
	r := Resume{
		PersonalInfo:   PersonalInfo{FullName: "Ada"},
		Summary:        "Engineer.",
		Education:      []Education{{Institution: "UCL"}},
		Experience:     []Experience{{Title: "Engineer"}},
		Certifications: []Certification{{Name: "Cert"}},
		Projects:       []Project{{Name: "Engine"}},
		Skills:         []string{"Go"},
		Languages:      []string{"English"},
		Hobbies:        []string{"Chess"},
		Website:        "https://ada.dev",
		LinkedIn:       "ada",
		GitHub:         "ada",
		PhotoURL:       "https://ada.dev/photo.png",
	}
	if got := r.CalculateCompletion(); got != 100 {
		t.Fatalf("all 13 sections should score 100, got %d", got)
	}
}

func TestCalculateCompletion_WhitespaceNotFilled(t *testing.T) {
	r := Resume{Summary: "   ", Website: "\t"}
	if got := r.CalculateCompletion(); got != 0 {
		t.Fatalf("whitespace-only fields must not count, got %d", got)
	}
}

func TestCalculateCompletion_Idempotent(t *testing.T) {
	r := Resume{Skills: []string{"Go"}, Summary: "x"}
	first := r.CalculateCompletion()
	r.CompletionPercentage = first
	if second := r.CalculateCompletion(); second != first {
		t.Fatalf("recomputation changed the score: %d vs %d", first, second)
	}
}
