package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmind/internal/interfaces/httpserver/handlers/profilehandler"
	"tripmind/internal/interfaces/httpserver/middlewares"
	profilerequests "tripmind/internal/interfaces/httpserver/requests/profilereq"
	"tripmind/internal/interfaces/httpserver/responses"
	"tripmind/internal/utils/platformerrors"
)

type ProfileRoute struct {
	handler *profilehandler.ProfileHandler
}

func NewProfileRoute(handler *profilehandler.ProfileHandler) *ProfileRoute {
	return &ProfileRoute{handler: handler}
}

func (route *ProfileRoute) RegisterRouter(router gin.IRouter) {
	profile := router.Group("/profile")
	profile.GET("", route.getProfile)
	profile.PUT("", route.updateProfile)
}

func (route *ProfileRoute) getProfile(reqCtx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "")
		return
	}

	response, err := route.handler.GetProfile(reqCtx.Request.Context(), userID)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to get profile")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}

func (route *ProfileRoute) updateProfile(reqCtx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "")
		return
	}

	var req profilerequests.UpdateProfileRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid profile payload", "")
		return
	}

	response, err := route.handler.UpdateProfile(reqCtx.Request.Context(), userID, req)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to update profile")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}
