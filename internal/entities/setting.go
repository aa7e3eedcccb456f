package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Library seeding bookkeeping
	SettingKeySeedLastAt     = "seed_last_at"
	SettingKeySeedLastResult = "seed_last_result"

	// Dangling annotation audit (database overrides for env config)
	SettingKeyMaintenanceEnabled  = "maintenance_enabled"
	SettingKeyMaintenanceSchedule = "maintenance_schedule"

	// Dangling annotation audit status
	SettingKeyAuditLastAt     = "annotation_audit_last_at"
	SettingKeyAuditLastReport = "annotation_audit_last_report"
)
