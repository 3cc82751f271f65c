// Package config handles configuration loading, parsing, and validation
// from various sources (a .env file, environment variables, an optional config
// file). It provides type-safe access to the settings needed by the HTTP
// server, the database layer, authentication and the LLM adapter.
package config
