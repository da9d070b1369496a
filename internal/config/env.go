package config

import "os"

// Environment variable names for overrides.
const (
	EnvConfig      = "ONEDRIVE_REST_API_CONFIG"
	EnvMock        = "ONEDRIVE_REST_API_MOCK"
	EnvEnvironment = "ONEDRIVE_REST_API_ENV"
	EnvListen      = "ONEDRIVE_REST_API_LISTEN"
	EnvToken       = "ONEDRIVE_REST_API_TOKEN"
)

// EnvironmentDevelopment selects the mock transport unless EnvMock says
// otherwise.
const EnvironmentDevelopment = "development"

// EnvOverrides holds values read from environment variables. Mock is kept
// raw so Resolve can report a malformed value.
type EnvOverrides struct {
	ConfigPath  string // ONEDRIVE_REST_API_CONFIG
	Mock        string // ONEDRIVE_REST_API_MOCK: strconv.ParseBool syntax
	Environment string // ONEDRIVE_REST_API_ENV
	ListenAddr  string // ONEDRIVE_REST_API_LISTEN
}

// ReadEnvOverrides reads environment variables and returns any overrides found.
func ReadEnvOverrides() EnvOverrides {
	return EnvOverrides{
		ConfigPath:  os.Getenv(EnvConfig),
		Mock:        os.Getenv(EnvMock),
		Environment: os.Getenv(EnvEnvironment),
		ListenAddr:  os.Getenv(EnvListen),
	}
}
