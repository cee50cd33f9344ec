// Package config provides configuration loading, merging, and validation
// facilities for the fieldsync binaries.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win; later sources only fill fields still unset):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for the sync server and
// [GetClientConfig] for the field client, which additionally applies the
// documented sync defaults.
package config
