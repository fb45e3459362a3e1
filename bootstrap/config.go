package bootstrap

import (
	"github.com/kbukum/vidscribe/config"
)

// Config is the interface constraint for application configuration types.
// config.Config satisfies it through the promoted ServiceConfig methods and
// its own ApplyDefaults and Validate.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
