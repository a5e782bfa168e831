package claim

import "go.uber.org/fx"

var Module = fx.Module("claim",
	fx.Provide(
		NewRateLimiter,
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
