package worker

import "go.uber.org/fx"

// Module provides the synthetic order generator.
var Module = fx.Provide(NewGenerator)
