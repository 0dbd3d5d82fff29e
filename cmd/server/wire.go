//go:build wireinject

package main

import (
	"github.com/google/wire"

	"tripmind/internal/domain"
	"tripmind/internal/infrastructure"
	"tripmind/internal/interfaces"
	"tripmind/internal/interfaces/httpserver/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
