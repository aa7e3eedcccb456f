package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sutra/internal/settingsstore"
)

// MaintenanceController exposes the dangling annotation audit and its schedule.
type MaintenanceController struct {
	auditor  AnnotationAuditor
	settings MaintenanceSettings
	runner   MaintenanceRunner
	baseCtx  context.Context
}

func NewMaintenanceController(cfg RouterConfig) *MaintenanceController {
	baseCtx := cfg.BaseContext
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &MaintenanceController{
		auditor:  cfg.Auditor,
		settings: cfg.MaintenanceSettings,
		runner:   cfg.MaintenanceRunner,
		baseCtx:  baseCtx,
	}
}

// Dangling handles GET /api/maintenance/dangling
// Runs the audit on demand without storing the report.
func (mc *MaintenanceController) Dangling(c *gin.Context) {
	if mc.auditor == nil {
		respondError(c, http.StatusServiceUnavailable, "annotation audit not available")
		return
	}
	report, err := mc.auditor.Check(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "dangling annotations")
		return
	}
	c.JSON(http.StatusOK, report)
}

type MaintenanceSettingsResponse struct {
	Config    settingsstore.MaintenanceConfigInfo `json:"config"`
	Status    settingsstore.MaintenanceStatus     `json:"status"`
	NextRun   *time.Time                          `json:"next_run,omitempty"`
	IsRunning bool                                `json:"is_running"`
}

// GetSettings handles GET /api/maintenance/settings
func (mc *MaintenanceController) GetSettings(c *gin.Context) {
	if mc.settings == nil {
		respondError(c, http.StatusServiceUnavailable, "settings store not available")
		return
	}
	c.JSON(http.StatusOK, mc.settingsResponse(c.Request.Context()))
}

// UpdateMaintenanceRequest is the request body for PUT /api/maintenance/settings
type UpdateMaintenanceRequest struct {
	Enabled  *bool  `json:"enabled" form:"enabled"`
	Schedule string `json:"schedule" form:"schedule"`
}

// UpdateSettings handles PUT /api/maintenance/settings
func (mc *MaintenanceController) UpdateSettings(c *gin.Context) {
	if mc.settings == nil {
		respondError(c, http.StatusServiceUnavailable, "settings store not available")
		return
	}

	var req UpdateMaintenanceRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}
	ctx := c.Request.Context()

	if req.Schedule != "" {
		if err := mc.settings.SetMaintenanceSchedule(ctx, req.Schedule); err != nil {
			respondStoreError(c, err, "save schedule")
			return
		}
	}
	if req.Enabled != nil {
		if err := mc.settings.SetMaintenanceEnabled(ctx, *req.Enabled); err != nil {
			respondStoreError(c, err, "save enabled state")
			return
		}
	}

	if !mc.reschedule(c) {
		return
	}
	c.JSON(http.StatusOK, mc.settingsResponse(ctx))
}

// ResetSettings handles DELETE /api/maintenance/settings
// Clears database overrides, reverting to env/defaults.
func (mc *MaintenanceController) ResetSettings(c *gin.Context) {
	if mc.settings == nil {
		respondError(c, http.StatusServiceUnavailable, "settings store not available")
		return
	}
	if err := mc.settings.ClearMaintenanceOverrides(c.Request.Context()); err != nil {
		respondStoreError(c, err, "reset maintenance settings")
		return
	}
	if !mc.reschedule(c) {
		return
	}
	c.JSON(http.StatusOK, mc.settingsResponse(c.Request.Context()))
}

// RunNow handles POST /api/maintenance/run
func (mc *MaintenanceController) RunNow(c *gin.Context) {
	if mc.runner == nil {
		respondError(c, http.StatusServiceUnavailable, "maintenance scheduler not available")
		return
	}
	if err := mc.runner.RunNow(c.Request.Context()); err != nil {
		respondInternalError(c, err, "run maintenance")
		return
	}
	respondSuccess(c, "annotation audit started")
}

func (mc *MaintenanceController) reschedule(c *gin.Context) bool {
	if mc.runner == nil {
		return true
	}
	if err := mc.runner.Reschedule(mc.baseCtx); err != nil {
		respondInternalError(c, err, "reschedule maintenance")
		return false
	}
	return true
}

func (mc *MaintenanceController) settingsResponse(ctx context.Context) MaintenanceSettingsResponse {
	resp := MaintenanceSettingsResponse{
		Config: mc.settings.GetMaintenanceConfigInfo(ctx),
		Status: mc.settings.GetMaintenanceStatus(ctx),
	}
	if mc.runner != nil {
		resp.NextRun = mc.runner.GetNextRunTime()
		resp.IsRunning = mc.runner.IsRunning()
	}
	return resp
}
