package main

import (
	"github.com/hibiken/asynq"

	sessionJob "readtrack-backend/internal/domains/session/job"
	"readtrack-backend/internal/shared"
	"readtrack-backend/pkg/container"
)

// HandlerRegistry collects every task handler the worker serves.
type HandlerRegistry struct {
	reminder *sessionJob.ReminderHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		reminder: sessionJob.NewReminderHandler(c.Store),
	}
}

func (r *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeSendDueReminders, r.reminder.HandleSendDueReminders)
}
