package plan

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmind/internal/interfaces/httpserver/handlers/planhandler"
	"tripmind/internal/interfaces/httpserver/middlewares"
	planrequests "tripmind/internal/interfaces/httpserver/requests/plan"
	"tripmind/internal/interfaces/httpserver/responses"
	"tripmind/internal/utils/platformerrors"
)

type PlanRoute struct {
	handler *planhandler.PlanHandler
}

func NewPlanRoute(handler *planhandler.PlanHandler) *PlanRoute {
	return &PlanRoute{handler: handler}
}

func (route *PlanRoute) RegisterRouter(router gin.IRouter) {
	plan := router.Group("/plan")
	plan.POST("", route.handleTurn)
	plan.GET("/travel-time", route.travelTime)
}

func (route *PlanRoute) handleTurn(reqCtx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "")
		return
	}

	var req planrequests.PlanRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "message is required", "")
		return
	}

	response, err := route.handler.HandleTurn(reqCtx.Request.Context(), userID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to process turn")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}

func (route *PlanRoute) travelTime(reqCtx *gin.Context) {
	origin := reqCtx.Query("origin")
	destination := reqCtx.Query("destination")
	if origin == "" || destination == "" {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "origin and destination are required", "")
		return
	}

	response, err := route.handler.TravelTime(reqCtx.Request.Context(), origin, destination, reqCtx.Query("mode"))
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to estimate travel time")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}
