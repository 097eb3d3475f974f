package config

type InternalConfig struct {
	App      App
	JWT      AppJWT
	Resolver AppResolver
	RabbitMQ AppRabbitMQ
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	EndpointPrefix             string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	MaxTimeRequestsPerSeconds  int
	RequestBodyLimitInMegabyte int
	CORSAllowedOrigins         []string
	// ProfileStore selects "mongo" or "memory"
	ProfileStore string
}

type AppJWT struct {
	Secret string
}

type AppResolver struct {
	CacheEnabled      bool
	CacheTTLInSeconds int
}

type AppRabbitMQ struct {
	IntegrityQueue string
}
