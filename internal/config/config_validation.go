// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package config

import (
	"strings"

	"github.com/agrostack/fieldsync/models"
)

// validate checks the invariants shared by every binary loading the merged
// [StructuredConfig].
//
// Role-specific requirements live in [StructuredConfig.ValidateServer] and
// [ClientConfig.validate]: the shared loader stays lenient because the server
// and the field client require different subsets of the configuration.
func (cfg *StructuredConfig) validate() error {
	return nil
}

// ValidateServer checks the fields the sync server cannot start without.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.ServerURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	switch cfg.Sync.DefaultStrategy {
	case models.StrategyManual, models.StrategyKeepLocal, models.StrategyKeepServer:
	default:
		return ErrInvalidSyncConfigs
	}

	if cfg.Sync.Interval <= 0 || cfg.Sync.MaxAttempts <= 0 || cfg.Sync.BackoffMin > cfg.Sync.BackoffMax {
		return ErrInvalidSyncConfigs
	}

	if cfg.Sync.PushBatchSize <= 0 {
		return ErrInvalidSyncConfigs
	}

	for _, entityType := range cfg.Sync.EntityTypes {
		if !entityType.Valid() {
			return ErrInvalidSyncConfigs
		}
	}

	return nil
}
