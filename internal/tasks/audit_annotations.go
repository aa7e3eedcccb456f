package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/sutra/internal/library"
)

// AnnotationAuditor checks annotations against the library and stores the
// report.
type AnnotationAuditor interface {
	Run(ctx context.Context) (*library.AuditReport, error)
}

// AuditAnnotationsTask looks for annotations whose position no longer
// resolves. It never modifies annotations.
type AuditAnnotationsTask struct {
	Trigger string `json:"trigger,omitempty"`
}

// Config returns the queue configuration for annotation audit tasks.
func (t AuditAnnotationsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "audit_annotations",
		MaxAttempts: 2,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// AuditAnnotationsProcessor creates a processor function for AuditAnnotationsTask.
func AuditAnnotationsProcessor(auditor AnnotationAuditor) backlite.QueueProcessor[AuditAnnotationsTask] {
	return func(ctx context.Context, task AuditAnnotationsTask) error {
		if auditor == nil {
			return fmt.Errorf("annotation auditor not configured")
		}

		report, err := auditor.Run(ctx)
		if err != nil {
			return fmt.Errorf("audit annotations: %w", err)
		}

		log.Printf("[TASK] Annotation audit (%s): %d dangling", reasonOrDefault(task.Trigger), len(report.Dangling))
		return nil
	}
}

// NewAuditAnnotationsQueue creates a backlite queue for annotation audits.
func NewAuditAnnotationsQueue(auditor AnnotationAuditor) backlite.Queue {
	return backlite.NewQueue(AuditAnnotationsProcessor(auditor))
}
