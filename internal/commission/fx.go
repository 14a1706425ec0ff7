package commission

import (
	"github.com/smallbiznis/lodgera/internal/commission/repository"
	"github.com/smallbiznis/lodgera/internal/commission/service"
	"go.uber.org/fx"
)

var Module = fx.Module("commission.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
