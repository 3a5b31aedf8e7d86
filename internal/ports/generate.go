// Package ports holds the interfaces between the weather core and its
// adapters: upstream providers, cache backends, logging, metrics and health.
// Mocks in internal/mocks are generated from this package.
//
//go:generate mockery
package ports
