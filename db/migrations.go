package db

import "embed"

// Migrations holds the goose migrations for the SQL-backed store.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
