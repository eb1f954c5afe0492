package config

const (
	// EnvPrefix scopes every environment variable read by envconfig.
	EnvPrefix = "FARMMARKET"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "FARMMARKET_DB_DSN"
	EnvDBHost = "FARMMARKET_DB_HOST"
	EnvDBUser = "FARMMARKET_DB_USER"
	EnvDBName = "FARMMARKET_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
