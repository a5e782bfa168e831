package location

import "go.uber.org/fx"

var Module = fx.Module("location",
	fx.Provide(
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)
