package tasks

import (
	"fmt"

	"github.com/mikestefanello/backlite"
)

// TypeInfo describes a task that can be triggered on demand.
type TypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// Types lists the manually runnable tasks.
func Types() []TypeInfo {
	return []TypeInfo{
		{
			Type:        "seed_library",
			Description: "Insert catalog works missing from the library",
			Queue:       SeedLibraryTask{}.Config().Name,
		},
		{
			Type:        "audit_annotations",
			Description: "Report annotations whose text, chapter or verse no longer exists",
			Queue:       AuditAnnotationsTask{}.Config().Name,
		},
	}
}

// NewTask builds a task for a type name from Types.
func NewTask(taskType, reason string) (backlite.Task, error) {
	switch taskType {
	case "seed_library":
		return SeedLibraryTask{Reason: reason}, nil
	case "audit_annotations":
		return AuditAnnotationsTask{Trigger: reason}, nil
	default:
		return nil, fmt.Errorf("unknown task type: %s", taskType)
	}
}
