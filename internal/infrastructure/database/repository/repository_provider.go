package repository

import (
	"tripmind/internal/infrastructure/database/repository/conversationrepo"
	"tripmind/internal/infrastructure/database/repository/itineraryrepo"
	"tripmind/internal/infrastructure/database/repository/preferencerepo"
	"tripmind/internal/infrastructure/database/repository/userrepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	conversationrepo.NewConversationGormRepository,
	itineraryrepo.NewItineraryGormRepository,
	preferencerepo.NewPreferenceGormRepository,
	userrepo.NewUserGormRepository,
)
