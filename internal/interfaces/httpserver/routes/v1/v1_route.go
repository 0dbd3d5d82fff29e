package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmind/internal/config"
	"tripmind/internal/interfaces/httpserver/routes/v1/conversation"
	"tripmind/internal/interfaces/httpserver/routes/v1/itineraries"
	"tripmind/internal/interfaces/httpserver/routes/v1/plan"
	"tripmind/internal/interfaces/httpserver/routes/v1/profile"
)

type V1Route struct {
	plan         *plan.PlanRoute
	conversation *conversation.ConversationRoute
	itineraries  *itineraries.ItineraryRoute
	profile      *profile.ProfileRoute
}

func NewV1Route(
	plan *plan.PlanRoute,
	conversation *conversation.ConversationRoute,
	itineraries *itineraries.ItineraryRoute,
	profile *profile.ProfileRoute,
) *V1Route {
	return &V1Route{
		plan,
		conversation,
		itineraries,
		profile,
	}
}

// RegisterRouter mounts the v1 surface. The identity middleware guards
// everything except version and health probes.
func (v1Route *V1Route) RegisterRouter(router gin.IRouter, identity gin.HandlerFunc) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Router.GET("/healthz", GetHealthz)
	v1Router.GET("/readyz", GetReadyz)

	protected := v1Router.Group("")
	protected.Use(identity)

	v1Route.plan.RegisterRouter(protected)
	v1Route.conversation.RegisterRouter(protected)
	v1Route.itineraries.RegisterRouter(protected)
	v1Route.profile.RegisterRouter(protected)
}

// GetVersion returns the build version and when the environment was last
// reloaded.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": config.GetEnvReloadedAt().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GetHealthz reports liveness.
func GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetReadyz reports readiness.
func GetReadyz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
