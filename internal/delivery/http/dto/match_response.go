package dto

import (
	"talenthub/internal/repository"

	"github.com/google/uuid"
)

type MatchResponse struct {
	Matches     []MatchedJobResponse `json:"matches"`
	Explanation string               `json:"explanation"`
}

type MatchedJobResponse struct {
	MatchID     uuid.UUID      `json:"match_id"`
	Score       int            `json:"score"`
	Explanation string         `json:"explanation"`
	Job         repository.Job `json:"job"`
}
