// Package config loads gofetch client settings from files and the
// environment.
//
// It uses Viper to read a YAML file and godotenv to load .env files, then
// binds prefixed environment variables over the file values:
//
//	var cfg config.ClientConfig
//	if err := config.LoadConfig("api", &cfg); err != nil {
//		return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//	client, err := cfg.NewClient()
//
// With the name "api", API_BASE_URL overrides base_url and
// API_TRANSPORT_TIMEOUT overrides transport.timeout.
package config
