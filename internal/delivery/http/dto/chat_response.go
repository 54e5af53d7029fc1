package dto

type ChatResponse struct {
	Reply string `json:"reply"`
}
