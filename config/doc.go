// Package config loads the vidscribe configuration.
//
// Viper reads config.yml from the standard locations (./cmd/vidscribe,
// ./config, the working directory) or an explicit path, then overlays the
// process environment and an optional .env file loaded with godotenv.
// Environment keys map onto nested config paths, so DEEPGRAM_API_KEY sets
// deepgram.api_key and WHISPER_MODEL sets whisper.model.
//
// # Usage
//
//	cfg, err := config.Load(config.WithConfigFile("config.yml"))
//
// The result is loaded once at startup and passed by value into the
// component constructors.
package config
