package usecase

import "go.uber.org/fx"

// PharmacyModule provides the use cases of a pharmacy instance.
var PharmacyModule = fx.Provide(
	NewOrderUseCase,
	NewCatalogUseCase,
)

// OrchestratorModule provides the use cases of the orchestrator.
var OrchestratorModule = fx.Provide(
	NewRoutingUseCase,
)
