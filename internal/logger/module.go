package logger

import "go.uber.org/fx"

// Module provides the service logger. A Level must be supplied by the graph.
var Module = fx.Module("logger", fx.Provide(New))
