package tasks

import (
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

type taskDTO struct {
	ID           int64
	Title        string
	Description  string
	ProjectID    int64
	AssigneeID   *int64
	Tags         []string
	Priority     int
	Date         time.Time
	Recurring    bool
	RecurrenceID *int64
	Active       bool
	CreatedAt    time.Time
}

func mapToTask(dto *taskDTO) *model.Task {
	tags := dto.Tags
	if tags == nil {
		tags = []string{}
	}

	return &model.Task{
		ID:           dto.ID,
		Recurring:    dto.Recurring,
		RecurrenceID: dto.RecurrenceID,
		Active:       dto.Active,
		CreatedAt:    dto.CreatedAt,
		TaskCreate: model.TaskCreate{
			ProjectID:   dto.ProjectID,
			AssigneeID:  dto.AssigneeID,
			Title:       dto.Title,
			Description: dto.Description,
			Tags:        tags,
			Priority:    model.Priority(dto.Priority),
			Date:        dto.Date,
		},
	}
}
