package metrics

import "go.uber.org/fx"

// Module wires the prometheus instruments.
var Module = fx.Module("observability.metrics",
	fx.Provide(New),
	fx.Provide(NewHTTPMetrics),
)
