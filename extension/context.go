// context.go defines the Context interface for extension access to arcaide
// internals. The Context provides a controlled surface area for extensions -
// they can access what they need without reaching into arbitrary internals.
//
// Extensions receive Context during Init(), not at construction, to support
// the two-phase initialisation pattern where extensions register before the
// service is available.

package extension

import (
	"database/sql"

	"github.com/KeeghanM/arc-aide-sub000/internal/config"
	"github.com/KeeghanM/arc-aide-sub000/internal/service"
)

// Context provides extensions controlled access to arcaide internals.
type Context interface {
	// Service returns the campaign service for entity operations.
	Service() service.Service

	// DB exposes the database for extensions needing custom tables.
	// Extensions should create their own tables, not modify core tables.
	DB() *sql.DB

	// Config returns user configuration for respecting user preferences.
	Config() *config.Config
}

type extContext struct {
	svc service.Service
	db  *sql.DB
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, db *sql.DB, cfg *config.Config) Context {
	return &extContext{
		svc: svc,
		db:  db,
		cfg: cfg,
	}
}

func (c *extContext) Service() service.Service { return c.svc }

func (c *extContext) DB() *sql.DB { return c.db }

func (c *extContext) Config() *config.Config { return c.cfg }
