package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/pharmanet/internal/config"
)

// Module provides the service token verifier via fx.
var Module = fx.Provide(newTokenVerifier)

type verifierParams struct {
	fx.In

	Config *config.Pharmacy
}

func newTokenVerifier(p verifierParams) TokenVerifier {
	return NewBcryptVerifier(p.Config.ServiceTokenHash)
}
