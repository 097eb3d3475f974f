package controllers

import (
	"context"
	"healthmate-service/internal/pkg/constvars"
	"healthmate-service/internal/pkg/exceptions"
	"healthmate-service/internal/pkg/utils"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"
)

// HealthCheck probes a backing service.
type HealthCheck func(ctx context.Context) error

type HealthController struct {
	Log     *zap.Logger
	Version string
	Checks  map[string]HealthCheck
}

func NewHealthController(logger *zap.Logger, version string, checks map[string]HealthCheck) *HealthController {
	return &HealthController{
		Log:     logger,
		Version: version,
		Checks:  checks,
	}
}

func (ctrl *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(ctrl.Checks))
	for name := range ctrl.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		if err := ctrl.Checks[name](ctx); err != nil {
			ctrl.Log.Warn("HealthController.Health dependency unhealthy",
				zap.String("dependency", name),
				zap.Error(err),
			)
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}

	if !healthy {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.WrapWithoutError(constvars.StatusServiceUnavailable, constvars.ErrClientSomethingWrongWithApplication, "dependency check failed"))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, map[string]interface{}{
		"version":      ctrl.Version,
		"dependencies": status,
	})
}
