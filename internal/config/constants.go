package config

const (
	// DefaultDatabasePath is the default path for the library and annotation database
	DefaultDatabasePath = "./sutra.db"

	// DefaultMaintenanceSchedule runs the dangling annotation audit daily at 03:00
	DefaultMaintenanceSchedule = "0 3 * * *"
)
