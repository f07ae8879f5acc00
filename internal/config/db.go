package config

// Supported gorm engines.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string `mapstructure:"extras"     toml:"extras"`
	Host       string `mapstructure:"host"       toml:"host"`
	Port       int    `mapstructure:"port"       toml:"port"`
	User       string `mapstructure:"user"       toml:"user"`
	Password   string `mapstructure:"password"   toml:"password"`
	Name       string `mapstructure:"name"       toml:"name"`
	GormEngine string `mapstructure:"gormEngine" toml:"gormEngine" validate:"oneof=mysql postgres sqlite"`
	// Path of the sqlite database file, ":memory:" for a throwaway database.
	Path string `mapstructure:"path" toml:"path"`
}
