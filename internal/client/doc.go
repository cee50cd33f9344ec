// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

// Package client implements the field client application runtime.
//
// It wires terminal UI flows, client services, and background synchronization
// into a single process lifecycle.
package client
