package agent

import (
	"github.com/smallbiznis/lodgera/internal/agent/repository"
	"github.com/smallbiznis/lodgera/internal/agent/service"
	"go.uber.org/fx"
)

var Module = fx.Module("agent.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
