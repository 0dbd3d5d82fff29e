package routes

import (
	"github.com/google/wire"

	"tripmind/internal/interfaces/httpserver/handlers"
	v1 "tripmind/internal/interfaces/httpserver/routes/v1"
	"tripmind/internal/interfaces/httpserver/routes/v1/conversation"
	"tripmind/internal/interfaces/httpserver/routes/v1/itineraries"
	"tripmind/internal/interfaces/httpserver/routes/v1/plan"
	"tripmind/internal/interfaces/httpserver/routes/v1/profile"
)

var RouteProvider = wire.NewSet(
	// Handlers
	handlers.HandlerProvider,

	// Routes
	v1.NewV1Route,
	plan.NewPlanRoute,
	conversation.NewConversationRoute,
	itineraries.NewItineraryRoute,
	profile.NewProfileRoute,
)
