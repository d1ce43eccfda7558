// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authfeature "github.com/waypointhub/waypoint/internal/app/features/authapi"
	groupsfeature "github.com/waypointhub/waypoint/internal/app/features/groupsapi"
	healthfeature "github.com/waypointhub/waypoint/internal/app/features/health"
	progressfeature "github.com/waypointhub/waypoint/internal/app/features/progressapi"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. The token manager is created here and
// its LoadPrincipal middleware applied globally, so every handler can ask
// auth.CurrentPrincipal for the authenticated caller.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	authMgr, err := auth.NewManager(appCfg.JWTSecret, appCfg.JWTTTL, logger)
	if err != nil {
		logger.Error("auth manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads the Principal into context when the
	// request carries a valid bearer token.
	r.Use(authMgr.LoadPrincipal)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	authHandler := authfeature.NewHandler(db, authMgr, appCfg.FacilitatorCode, appCfg.BcryptCost, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	groupsHandler := groupsfeature.NewHandler(db, authMgr, appCfg.BcryptCost, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	progressHandler := progressfeature.NewHandler(db, authMgr, logger)
	r.Mount("/progress", progressfeature.Routes(progressHandler))

	return r, nil
}
