package dto

import "talenthub/internal/importer"

// ImportResponse wraps the extracted draft; the posting is not persisted
// until the recruiter creates a job from it.
type ImportResponse struct {
	Draft importer.Draft `json:"draft"`
}
