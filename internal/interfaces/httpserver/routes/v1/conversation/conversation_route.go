package conversation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmind/internal/interfaces/httpserver/handlers/conversationhandler"
	"tripmind/internal/interfaces/httpserver/middlewares"
	"tripmind/internal/interfaces/httpserver/responses"
	"tripmind/internal/utils/platformerrors"
)

type ConversationRoute struct {
	handler *conversationhandler.ConversationHandler
}

func NewConversationRoute(handler *conversationhandler.ConversationHandler) *ConversationRoute {
	return &ConversationRoute{handler: handler}
}

func (route *ConversationRoute) RegisterRouter(router gin.IRouter) {
	conversations := router.Group("/conversations")
	conversations.GET("", route.listConversations)
	conversations.GET("/:conv_public_id", route.getConversation)
	conversations.DELETE("/:conv_public_id", route.deleteConversation)
}

func (route *ConversationRoute) listConversations(reqCtx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "")
		return
	}

	response, err := route.handler.ListConversations(reqCtx.Request.Context(), userID)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to list conversations")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}

func (route *ConversationRoute) getConversation(reqCtx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "")
		return
	}

	response, err := route.handler.GetConversation(reqCtx.Request.Context(), userID, reqCtx.Param("conv_public_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to get conversation")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}

func (route *ConversationRoute) deleteConversation(reqCtx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "authentication required", "")
		return
	}

	response, err := route.handler.DeleteConversation(reqCtx.Request.Context(), userID, reqCtx.Param("conv_public_id"))
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to delete conversation")
		return
	}
	reqCtx.JSON(http.StatusOK, response)
}
