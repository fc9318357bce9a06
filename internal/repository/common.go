// Package repository implements the domain repositories on top of a
// gateway.DataStore, so the same code runs against the hosted REST backend and
// the local SQL database.
package repository

import (
	stderrors "errors"
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
)

// Table names
const (
	tableProfiles    = "profiles"
	tableClients     = "clients"
	tableProjects    = "projects"
	tableInvoices    = "invoices"
	tableTimeEntries = "time_entries"
)

// lookupError maps gateway.ErrNotFound to a NotFound AppError
func lookupError(err error, resource string) error {
	if stderrors.Is(err, gateway.ErrNotFound) {
		return errors.NotFound(resource)
	}
	return err
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return gateway.Date(*t)
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func orDefault(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
