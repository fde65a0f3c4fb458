package config

import (
	"fmt"
	"time"
)

// AgentApp holds application-level agent settings derived from the shared
// structured config.
type AgentApp struct {
	// HashKey is the HMAC key used by the agent for payload integrity checks.
	HashKey string
	// Version is the agent build version.
	Version string
}

// AgentBackend holds network settings used by the agent transport layer.
type AgentBackend struct {
	// BaseURL is the hosted backend API root.
	BaseURL string
	// RequestTimeout is the default timeout for outbound RPC calls.
	RequestTimeout time.Duration
	// Token is an optional pre-issued bearer token.
	Token string
}

// AgentDB contains local database connection settings for the agent.
type AgentDB struct {
	// DSN is the SQLite file path used by the agent.
	DSN string
}

// AgentStorage groups agent storage backend settings.
type AgentStorage struct {
	// DB holds local database settings.
	DB AgentDB
}

// AgentControl holds the control API listen settings.
type AgentControl struct {
	// HTTPAddress is the local control API listen address.
	HTTPAddress string
}

// AgentWorkers contains background worker settings.
type AgentWorkers struct {
	// EventID selects the event this device is staffing.
	EventID int64
	// ProbeInterval defines how often to probe backend reachability.
	ProbeInterval time.Duration
	// AutoSync enables the automatic drain on reconnect.
	AutoSync bool
	// AutoPrefetch enables the automatic prefetch while online.
	AutoPrefetch bool
}

// AgentConfig is the top-level agent configuration assembled from
// [StructuredConfig].
type AgentConfig struct {
	// App contains application-level agent settings.
	App AgentApp
	// Backend contains remote RPC boundary settings.
	Backend AgentBackend
	// Storage contains local storage settings.
	Storage AgentStorage
	// Control contains control API settings.
	Control AgentControl
	// Workers contains background job settings.
	Workers AgentWorkers
}

// GetAgentConfig builds and validates an agent-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the agent runtime, and validates the resulting [AgentConfig].
func GetAgentConfig() (*AgentConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	agentCfg := &AgentConfig{
		App: AgentApp{
			HashKey: cfg.App.HashKey,
			Version: cfg.App.Version,
		},
		Backend: AgentBackend{
			BaseURL:        cfg.Backend.BaseURL,
			RequestTimeout: cfg.Backend.RequestTimeout,
			Token:          cfg.Backend.Token,
		},
		Storage: AgentStorage{
			DB: AgentDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Control: AgentControl{
			HTTPAddress: cfg.Control.HTTPAddress,
		},
		Workers: AgentWorkers{
			EventID:       cfg.Workers.EventID,
			ProbeInterval: cfg.Workers.ProbeInterval,
			AutoSync:      cfg.Workers.AutoSync,
			AutoPrefetch:  cfg.Workers.AutoPrefetch,
		},
	}

	if err = agentCfg.validate(); err != nil {
		return nil, fmt.Errorf("agent config validation: %w", err)
	}

	return agentCfg, nil
}

func (cfg *AgentConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Backend.BaseURL == "" || cfg.Backend.RequestTimeout == 0 {
		return ErrInvalidBackendConfigs
	}

	if cfg.Workers.ProbeInterval == 0 || cfg.Workers.EventID == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
