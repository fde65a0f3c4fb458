package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a control API address in format [host]:[port]
//	-b backend base URL
//	-d local database DSN (SQLite file path)
//	-c/-config json file path with configs
//	-event target event id for this device's session
//	-probe-interval connectivity probe interval (e.g., "10s")
//	-request-timeout backend request timeout (e.g., "30s", "1m")
//	-auto-sync enable automatic drain on reconnect
//	-auto-prefetch enable automatic event prefetch while online
//	-hash-key payload integrity hash key
//	-token pre-issued backend bearer token
func ParseFlags() *StructuredConfig {
	var controlAddress NetAddress
	var backendBaseURL string
	var databaseDSN string
	var jsonConfigPath string
	var eventID int64
	var probeInterval time.Duration
	var requestTimeout time.Duration
	var autoSync bool
	var autoPrefetch bool
	var hashKey string
	var token string

	flag.Var(&controlAddress, "a", "Control API net address host:port")
	flag.StringVar(&backendBaseURL, "b", "", "Backend base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.Int64Var(&eventID, "event", 0, "Target event id")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval (e.g., 10s)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Backend request timeout (e.g., 30s, 1m)")
	flag.BoolVar(&autoSync, "auto-sync", false, "Drain the offline queue automatically on reconnect")
	flag.BoolVar(&autoPrefetch, "auto-prefetch", false, "Prefetch event data automatically while online")
	flag.StringVar(&hashKey, "hash-key", "", "Payload integrity hash key")
	flag.StringVar(&token, "token", "", "Pre-issued backend bearer token")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			HashKey: hashKey,
		},
		Backend: Backend{
			BaseURL:        backendBaseURL,
			RequestTimeout: requestTimeout,
			Token:          token,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Control: Control{
			HTTPAddress: controlAddress.String(),
		},
		Workers: Workers{
			EventID:       eventID,
			ProbeInterval: probeInterval,
			AutoSync:      autoSync,
			AutoPrefetch:  autoPrefetch,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
