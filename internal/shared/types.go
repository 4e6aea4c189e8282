package shared

// Background task types, shared between the API and the worker so the
// queue names never drift apart.
const (
	TypeSendDueReminders = "session:send_due_reminders"
)

// Queue names, in priority order.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)
