// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment using viper and godotenv.
//
// Environment variables override file values. A variable such as
// STORAGE_SECRET_KEY is bound to every nested key it could name
// (storage.secret_key, storage.secret.key, ...), so nested structs can be
// overridden without registering each key.
package config
