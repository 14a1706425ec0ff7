package resource

import (
	"github.com/smallbiznis/lodgera/internal/resource/repository"
	"github.com/smallbiznis/lodgera/internal/resource/service"
	"go.uber.org/fx"
)

var Module = fx.Module("resource.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
