package bootstrap

import "github.com/kbukum/gallery/config"

// Config is the constraint for application configuration types. Any struct
// embedding config.ServiceConfig satisfies it via promoted methods as long
// as it also provides ApplyDefaults and Validate.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
