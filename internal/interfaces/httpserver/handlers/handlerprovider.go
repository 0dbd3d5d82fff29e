package handlers

import (
	"github.com/google/wire"

	"tripmind/internal/interfaces/httpserver/handlers/conversationhandler"
	"tripmind/internal/interfaces/httpserver/handlers/itineraryhandler"
	"tripmind/internal/interfaces/httpserver/handlers/planhandler"
	"tripmind/internal/interfaces/httpserver/handlers/profilehandler"
)

var HandlerProvider = wire.NewSet(
	planhandler.NewPlanHandler,
	conversationhandler.NewConversationHandler,
	itineraryhandler.NewItineraryHandler,
	profilehandler.NewProfileHandler,
)
