package postgres

import "embed"

// MigrationFS contém os scripts SQL do modelo de leitura de reservas
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
