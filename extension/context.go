// context.go defines the Context interface for extension access to mystuff
// internals.
//
// Extensions receive Context during Init(), not at construction, to support
// the two-phase initialisation pattern where extensions register before the
// store is opened.

package extension

import (
	"github.com/jpl-au/mystuff/internal/config"
	"github.com/jpl-au/mystuff/internal/service"
)

// Context provides extensions controlled access to mystuff internals.
type Context interface {
	// Service returns the link service.
	Service() *service.Service

	// Config returns user configuration for respecting user preferences.
	Config() *config.Config

	// DataDir returns the resolved data directory.
	DataDir() string
}

// extContext implements Context.
type extContext struct {
	svc *service.Service
	cfg *config.Config
	dir string
}

// NewContext creates a new extension context.
func NewContext(svc *service.Service, cfg *config.Config, dir string) Context {
	return &extContext{
		svc: svc,
		cfg: cfg,
		dir: dir,
	}
}

func (c *extContext) Service() *service.Service { return c.svc }

func (c *extContext) Config() *config.Config { return c.cfg }

func (c *extContext) DataDir() string { return c.dir }
