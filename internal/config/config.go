// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the gradgo
// sync agent. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the payload integrity key
	// and the agent version.
	App App `envPrefix:"APP_"`

	// Backend holds the address and timeout settings for the hosted gradgo
	// backend the agent syncs against.
	Backend Backend `envPrefix:"BACKEND_"`

	// Storage holds configuration for the local SQLite database that backs
	// the offline cache and the operation queue.
	Storage Storage `envPrefix:"STORAGE_"`

	// Control holds network settings for the local control API consumed by
	// the staff UI shell.
	Control Control `envPrefix:"CONTROL_"`

	// Workers holds settings for the background connectivity monitor and the
	// auto-sync controller.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// HashKey is the HMAC key used for request integrity checking between
	// the agent and the backend.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is the agent build version reported to the backend.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Backend holds the remote RPC boundary settings.
type Backend struct {
	// BaseURL is the root URL of the hosted gradgo backend API.
	// Env: BACKEND_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds each outbound RPC. A timeout stops the agent
	// waiting; it does not cancel whatever the backend does with the call.
	// Env: BACKEND_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is an optional pre-issued bearer token, useful for kiosk
	// deployments where the staff login happens on another device.
	// Env: BACKEND_TOKEN
	Token string `env:"TOKEN"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the local SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB contains local database connection settings.
type DB struct {
	// DSN is the SQLite file path (or ":memory:" in tests).
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Control holds the local control API settings.
type Control struct {
	// HTTPAddress is the listen address of the control API.
	// Env: CONTROL_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Workers holds background worker settings.
type Workers struct {
	// EventID selects the graduation event this device is staffing.
	// Env: WORKERS_EVENT_ID
	EventID int64 `env:"EVENT_ID"`

	// ProbeInterval defines how often the connectivity monitor pings the
	// backend.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// AutoSync enables the automatic queue drain on the offline→online edge.
	// Env: WORKERS_AUTO_SYNC
	AutoSync bool `env:"AUTO_SYNC"`

	// AutoPrefetch enables the automatic event data prefetch on session
	// entry while online.
	// Env: WORKERS_AUTO_PREFETCH
	AutoPrefetch bool `env:"AUTO_PREFETCH"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
