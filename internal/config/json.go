package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and the
// string-friendly [Duration] wrapper, so config files can spell durations as
// "15m" instead of nanosecond integers.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		HashKey       string   `json:"hash_key"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Blob struct {
			Driver    string `json:"driver"`
			Dir       string `json:"dir"`
			Bucket    string `json:"bucket"`
			Endpoint  string `json:"endpoint"`
			KeyPrefix string `json:"key_prefix"`
		} `json:"blob,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		ServerURL      string   `json:"server_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Sync struct {
		Interval        Duration `json:"interval"`
		MaxAttempts     int      `json:"max_attempts"`
		BackoffMin      Duration `json:"backoff_min"`
		BackoffMax      Duration `json:"backoff_max"`
		DefaultStrategy string   `json:"default_strategy"`
		PushBatchSize   int      `json:"push_batch_size"`
		PullPageSize    int      `json:"pull_page_size"`
		EntityTypes     []string `json:"entity_types"`
		DisableAutoSync bool     `json:"disable_auto_sync"`
		SkipAttachments bool     `json:"skip_attachments"`
		MaxOfflineDays  int      `json:"max_offline_days"`
		ProbeInterval   Duration `json:"probe_interval"`
	} `json:"sync,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			HashKey:       jsonCfg.App.HashKey,
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Blob: Blob{
				Driver:    jsonCfg.Storage.Blob.Driver,
				Dir:       jsonCfg.Storage.Blob.Dir,
				Bucket:    jsonCfg.Storage.Blob.Bucket,
				Endpoint:  jsonCfg.Storage.Blob.Endpoint,
				KeyPrefix: jsonCfg.Storage.Blob.KeyPrefix,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			ServerURL:      jsonCfg.Adapter.ServerURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Sync: Sync{
			Interval:        time.Duration(jsonCfg.Sync.Interval),
			MaxAttempts:     jsonCfg.Sync.MaxAttempts,
			BackoffMin:      time.Duration(jsonCfg.Sync.BackoffMin),
			BackoffMax:      time.Duration(jsonCfg.Sync.BackoffMax),
			DefaultStrategy: jsonCfg.Sync.DefaultStrategy,
			PushBatchSize:   jsonCfg.Sync.PushBatchSize,
			PullPageSize:    jsonCfg.Sync.PullPageSize,
			EntityTypes:     jsonCfg.Sync.EntityTypes,
			DisableAutoSync: jsonCfg.Sync.DisableAutoSync,
			SkipAttachments: jsonCfg.Sync.SkipAttachments,
			MaxOfflineDays:  jsonCfg.Sync.MaxOfflineDays,
			ProbeInterval:   time.Duration(jsonCfg.Sync.ProbeInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
