package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer

	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	JWT JWT `envPrefix:"JWT_"`

	// bootstrap admin, seeded at startup when both are set
	Admin BootstrapAdmin `envPrefix:"ADMIN_"`
}

type BootstrapAdmin struct {
	Email    string `env:"EMAIL"`
	Password string `env:"PASSWORD"`
}

type JWT struct {
	Secret        string `env:"SECRET,required"`
	UserTTLHours  int    `env:"USER_TTL_HOURS" envDefault:"24"`
	AdminTTLHours int    `env:"ADMIN_TTL_HOURS" envDefault:"8"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

func (e Environment) IsProduction() bool {
	return e.Name == "production"
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
