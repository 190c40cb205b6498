package config

import "go.uber.org/fx"

// PharmacyModule exposes the pharmacy configuration loader for fx graphs.
var PharmacyModule = fx.Provide(LoadPharmacy)

// OrchestratorModule exposes the orchestrator configuration loader for fx graphs.
var OrchestratorModule = fx.Provide(LoadOrchestrator)

// GeneratorModule exposes the generator configuration loader for fx graphs.
var GeneratorModule = fx.Provide(LoadGenerator)
