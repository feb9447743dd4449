package telegram

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	actionsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arenda",
		Subsystem: "bot",
		Name:      "actions_processed_total",
		Help:      "Menu callback actions processed, by action.",
	}, []string{"action"})

	messagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arenda",
		Subsystem: "bot",
		Name:      "messages_processed_total",
		Help:      "Text messages processed, by conversation state.",
	}, []string{"state"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arenda",
		Subsystem: "bot",
		Name:      "errors_total",
		Help:      "Failed operations, by stage.",
	}, []string{"stage"})

	objectsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "arenda",
		Subsystem: "bot",
		Name:      "objects_created_total",
		Help:      "Rental objects confirmed and sent to the backend.",
	})

	objectsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "arenda",
		Subsystem: "bot",
		Name:      "objects_deleted_total",
		Help:      "Rental objects deleted.",
	})

	recordsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "arenda",
		Subsystem: "bot",
		Name:      "records_created_total",
		Help:      "Monthly records sent to the backend.",
	})

	recordsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "arenda",
		Subsystem: "bot",
		Name:      "records_deleted_total",
		Help:      "Monthly records deleted.",
	})

	documentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "arenda",
		Subsystem: "bot",
		Name:      "documents_created_total",
		Help:      "Report documents generated.",
	})
)
