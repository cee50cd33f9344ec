package config

import (
	"fmt"
	"time"

	"github.com/agrostack/fieldsync/models"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey is the HMAC key used by the client for payload integrity checks.
	HashKey string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerURL is the base URL of the sync server.
	ServerURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains the local replica connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path (or connection string) of the replica.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB

	// SpoolDir is the directory where captured attachment bytes wait for
	// upload. Empty keeps the spool in memory.
	SpoolDir string
}

// ClientSync contains the reconciliation settings of the field client with
// all defaults applied.
type ClientSync struct {
	// Interval defines how often the background sync job runs.
	Interval time.Duration
	// MaxAttempts is the replay budget per pending operation.
	MaxAttempts int
	// BackoffMin and BackoffMax bound the exponential replay backoff.
	BackoffMin time.Duration
	BackoffMax time.Duration
	// DefaultStrategy is applied to fresh conflicts; StrategyManual leaves
	// them for interactive resolution.
	DefaultStrategy models.ResolutionStrategy
	// PushBatchSize caps how many queued operations one push request carries.
	PushBatchSize int
	// PullPageSize caps how many changed records one pull request fetches.
	PullPageSize int
	// EntityTypes is the watch list reconciliation covers. Defaults to every
	// known entity type.
	EntityTypes []models.EntityType
	// AutoSync enables the background reconciliation job.
	AutoSync bool
	// SyncAttachments includes attachment uploads in reconciliation passes.
	SyncAttachments bool
	// MaxOfflineDays is the age after which unsynced data triggers a warning.
	MaxOfflineDays int
	// ProbeInterval is the connectivity probe period.
	ProbeInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains reconciliation settings.
	Sync ClientSync

	// Headless disables the terminal UI; background sync still runs.
	Headless bool
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, applies sync defaults, and validates the
// resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
		},
		Adapter: ClientAdapter{
			ServerURL:      cfg.Adapter.ServerURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
			SpoolDir: cfg.Storage.Blob.Dir,
		},
		Sync:     clientSyncWithDefaults(cfg.Sync),
		Headless: cfg.Headless,
	}

	return clientCfg, clientCfg.validate()
}

// clientSyncWithDefaults maps the merged sync section onto [ClientSync],
// filling every unset field with its documented default.
func clientSyncWithDefaults(s Sync) ClientSync {
	out := ClientSync{
		Interval:        s.Interval,
		MaxAttempts:     s.MaxAttempts,
		BackoffMin:      s.BackoffMin,
		BackoffMax:      s.BackoffMax,
		DefaultStrategy: models.ResolutionStrategy(s.DefaultStrategy),
		PushBatchSize:   s.PushBatchSize,
		PullPageSize:    s.PullPageSize,
		AutoSync:        !s.DisableAutoSync,
		SyncAttachments: !s.SkipAttachments,
		MaxOfflineDays:  s.MaxOfflineDays,
		ProbeInterval:   s.ProbeInterval,
	}

	if out.Interval == 0 {
		out.Interval = DefaultSyncInterval
	}
	if out.MaxAttempts == 0 {
		out.MaxAttempts = DefaultMaxAttempts
	}
	if out.BackoffMin == 0 {
		out.BackoffMin = DefaultBackoffMin
	}
	if out.BackoffMax == 0 {
		out.BackoffMax = DefaultBackoffMax
	}
	if out.DefaultStrategy == "" {
		out.DefaultStrategy = models.StrategyManual
	}
	if out.PushBatchSize == 0 {
		out.PushBatchSize = DefaultPushBatchSize
	}
	if out.PullPageSize == 0 {
		out.PullPageSize = DefaultPullPageSize
	}
	for _, raw := range s.EntityTypes {
		out.EntityTypes = append(out.EntityTypes, models.EntityType(raw))
	}
	if len(out.EntityTypes) == 0 {
		out.EntityTypes = models.EntityTypes()
	}
	if out.MaxOfflineDays == 0 {
		out.MaxOfflineDays = DefaultMaxOfflineDays
	}
	if out.ProbeInterval == 0 {
		out.ProbeInterval = DefaultProbeInterval
	}

	return out
}
