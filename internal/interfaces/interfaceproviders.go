package interfaces

import (
	"github.com/google/wire"

	"tripmind/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
