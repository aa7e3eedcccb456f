package library

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/sutra/internal/clock"
	"github.com/mrlokans/sutra/internal/entities"
	"github.com/mrlokans/sutra/internal/query"
)

type DanglingFinder interface {
	FindDangling(ctx context.Context, listers ...query.PositionLister) ([]query.DanglingAnnotation, error)
}

// AuditReport is stored under SettingKeyAuditLastReport after every run.
type AuditReport struct {
	CheckedAt time.Time                  `json:"checked_at"`
	Dangling  []query.DanglingAnnotation `json:"dangling"`
}

// Auditor reports annotations whose text, chapter or verse no longer exists.
// It only reports; annotations are never rewritten or removed.
type Auditor struct {
	finder   DanglingFinder
	listers  []query.PositionLister
	settings SettingsStore
	clock    clock.Clock
}

func NewAuditor(finder DanglingFinder, settings SettingsStore, c clock.Clock, listers ...query.PositionLister) *Auditor {
	return &Auditor{
		finder:   finder,
		listers:  listers,
		settings: settings,
		clock:    c,
	}
}

// Check runs the audit without recording it.
func (a *Auditor) Check(ctx context.Context) (*AuditReport, error) {
	dangling, err := a.finder.FindDangling(ctx, a.listers...)
	if err != nil {
		return nil, fmt.Errorf("find dangling annotations: %w", err)
	}
	return &AuditReport{CheckedAt: a.clock.Now(), Dangling: dangling}, nil
}

// Run checks and stores the report.
func (a *Auditor) Run(ctx context.Context) (*AuditReport, error) {
	report, err := a.Check(ctx)
	if err != nil {
		return nil, err
	}

	if len(report.Dangling) > 0 {
		log.Printf("Audit: %d annotations point at positions missing from the library", len(report.Dangling))
	} else {
		log.Printf("Audit: all annotations resolve")
	}

	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode audit report: %w", err)
	}
	if err := a.settings.SetSetting(ctx, entities.SettingKeyAuditLastReport, string(data)); err != nil {
		return nil, err
	}
	if err := a.settings.SetTime(ctx, entities.SettingKeyAuditLastAt, report.CheckedAt); err != nil {
		return nil, err
	}
	return report, nil
}
