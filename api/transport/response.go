package transport

import (
	"time"

	"github.com/fastygo/choreboard/domain"
)

type TasksResponse struct {
	Tasks []domain.TaskWithLast `json:"tasks"`
}

type TaskResponse struct {
	Task *domain.Task `json:"task"`
}

type ParticipantsResponse struct {
	Participants []domain.Participant `json:"participants"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse reports dependency status.
type HealthResponse struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Services  interface{} `json:"services"`
}
