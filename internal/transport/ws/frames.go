package ws

import "sodiumbridge/internal/domain"

type requestFrame struct {
	ID   string         `json:"id"`
	Op   string         `json:"op"`
	Args []domain.Value `json:"args"`
}

type responseFrame struct {
	ID     string        `json:"id"`
	Result *domain.Reply `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}
