package router

import "go.uber.org/fx"

// PharmacyModule registers the pharmacy router for the fx runtime.
var PharmacyModule = fx.Provide(SetupPharmacy)

// OrchestratorModule registers the orchestrator router for the fx runtime.
var OrchestratorModule = fx.Provide(SetupOrchestrator)
