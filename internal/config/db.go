package config

// Supported database engines.
const (
	EngineSQLite   = "sqlite"
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Engine   string `mapstructure:"engine"   validate:"required,oneof=sqlite mysql postgres"`
	Path     string `mapstructure:"path"     validate:"required_if=Engine sqlite"` // sqlite file
	Host     string `mapstructure:"host"     validate:"required_unless=Engine sqlite"`
	Port     int    `mapstructure:"port"     validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"     validate:"required_unless=Engine sqlite"`
	Extras   string `mapstructure:"extras"` // appended to the DSN, e.g. parseTime=true
	SSLMode  string `mapstructure:"sslMode"` // postgres only
	LogLevel string `mapstructure:"logLevel"`
}
