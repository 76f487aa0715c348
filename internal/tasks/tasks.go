package tasks

// Task types and queues used with Asynq.

const (
	// TypeCategorizeNarrative categorizes one content item in the background.
	TypeCategorizeNarrative = "categorize:narrative"

	// QueueCategorize is the queue categorization tasks are enqueued on.
	QueueCategorize = "categorize"
)
