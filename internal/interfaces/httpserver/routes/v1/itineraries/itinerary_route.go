package itineraries

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmind/internal/interfaces/httpserver/handlers/itineraryhandler"
	"tripmind/internal/interfaces/httpserver/middlewares"
	itineraryrequests "tripmind/internal/interfaces/httpserver/requests/itineraryreq"
	"tripmind/internal/interfaces/httpserver/responses"
	"tripmind/internal/utils/platformerrors"
)

type ItineraryRoute struct {
	handler *itineraryhandler.ItineraryHandler
}

func NewItineraryRoute(handler *itineraryhandler.ItineraryHandler) *ItineraryRoute {
	return &ItineraryRoute{handler: handler}
}

func (route *ItineraryRoute) RegisterRouter(router gin.IRouter) {
	itineraries := router.Group("/itineraries")
	itineraries.POST("", route.saveItinerary)
	itineraries.GET("", route.listItineraries)
	itineraries.GET("/:itinerary_public_id", route.getItinerary)
	itineraries.DELETE("/:itinerary_public_id", route.deleteItinerary)
}

func (route *ItineraryRoute) saveItinerary(reqCtx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "")
		return
	}

	var req itineraryrequests.SaveItineraryRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "payload is required", "")
		return
	}

	response, err := route.handler.SaveItinerary(reqCtx.Request.Context(), userID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to save itinerary")
		return
	}
	reqCtx.JSON(http.StatusCreated, response)
}

func (route *ItineraryRoute) listItineraries(reqCtx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "")
		return
	}

	response, err := route.handler.ListItineraries(reqCtx.Request.Context(), userID)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to list itineraries")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}

func (route *ItineraryRoute) getItinerary(reqCtx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "")
		return
	}

	response, err := route.handler.GetItinerary(reqCtx.Request.Context(), userID, reqCtx.Param("itinerary_public_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to get itinerary")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}

func (route *ItineraryRoute) deleteItinerary(reqCtx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "")
		return
	}

	response, err := route.handler.DeleteItinerary(reqCtx.Request.Context(), userID, reqCtx.Param("itinerary_public_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to delete itinerary")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}
