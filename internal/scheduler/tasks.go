package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskPointConfirmation = "points.confirmation"

type PointConfirmationPayload struct {
	PointID int64    `json:"pointId"`
	Email   string   `json:"email"`
	Name    string   `json:"name"`
	City    string   `json:"city"`
	UF      string   `json:"uf"`
	Items   []string `json:"items,omitempty"`
}

func NewPointConfirmationTask(payload PointConfirmationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPointConfirmation, data), nil
}

func ParsePointConfirmationPayload(task *asynq.Task) (PointConfirmationPayload, error) {
	var payload PointConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return PointConfirmationPayload{}, err
	}
	return payload, nil
}
