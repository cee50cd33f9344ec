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
//	-a server listen address in format [host]:[port]
//	-d database DSN (PostgreSQL URI on the server, SQLite path on the client)
//	-server-url base URL of the sync server (client side)
//	-blob-driver attachment store driver (fs, s3, memory)
//	-blob-dir attachment store directory for the fs driver
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "12h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-hash-key request integrity hash key
//	-sync-interval background sync period (e.g., "15m")
//	-sync-strategy default conflict strategy (manual, keep_local, keep_server)
//	-sync-max-attempts replay budget per pending operation
//	-headless run the field client without the terminal UI
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var serverURL string
	var blobDriver string
	var blobDir string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var hashKey string
	var syncInterval time.Duration
	var syncStrategy string
	var syncMaxAttempts int
	var headless bool

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&serverURL, "server-url", "", "Sync server base URL")
	flag.StringVar(&blobDriver, "blob-driver", "", "Attachment store driver (fs, s3, memory)")
	flag.StringVar(&blobDir, "blob-dir", "", "Attachment store directory for the fs driver")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 12h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&hashKey, "hash-key", "", "Request integrity hash key")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync period (e.g., 15m)")
	flag.StringVar(&syncStrategy, "sync-strategy", "", "Default conflict strategy (manual, keep_local, keep_server)")
	flag.IntVar(&syncMaxAttempts, "sync-max-attempts", 0, "Replay budget per pending operation")
	flag.BoolVar(&headless, "headless", false, "Run the field client without the terminal UI")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			HashKey:       hashKey,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Blob: Blob{
				Driver: blobDriver,
				Dir:    blobDir,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			ServerURL:      serverURL,
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			Interval:        syncInterval,
			DefaultStrategy: syncStrategy,
			MaxAttempts:     syncMaxAttempts,
		},
		Headless:     headless,
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string so the value
// does not shadow other configuration sources.
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
