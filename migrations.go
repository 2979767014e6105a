// Package gateway holds assets shared by the gateway binaries.
package gateway

import "embed"

// Migrations contains the goose SQL migrations for the PostgreSQL conversation store.
//
//go:embed migrations/*.sql
var Migrations embed.FS
