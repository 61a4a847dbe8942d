package config

// EnvPrefix is passed to envconfig; individual fields carry explicit
// envconfig tags so the prefix only matters for unannotated additions.
const EnvPrefix = "FLEETLEDGER"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "FLEETLEDGER_APP_ENV"
	EnvPort       = "FLEETLEDGER_APP_PORT"
	EnvDBDSN      = "FLEETLEDGER_DB_DSN"
	EnvDBHost     = "FLEETLEDGER_DB_HOST"
	EnvDBUser     = "FLEETLEDGER_DB_USER"
	EnvDBName     = "FLEETLEDGER_DB_NAME"
	EnvRedisURL   = "FLEETLEDGER_REDIS_URL"
	EnvJWTSecret  = "FLEETLEDGER_JWT_SECRET"
	EnvJWTIssuer  = "FLEETLEDGER_JWT_ISSUER"
	EnvJWTExpMins = "FLEETLEDGER_JWT_EXPIRATION_MINUTES"
)

var componentDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
