/*
Copyright © 2026 Keeghan McGarry (KeeghanM) <keeghan@arc-aide.com>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before the store exists. The service is created once
// and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/KeeghanM/arc-aide-sub000/extension"
	"github.com/KeeghanM/arc-aide-sub000/internal/campaign"
	"github.com/KeeghanM/arc-aide-sub000/internal/config"
	"github.com/KeeghanM/arc-aide-sub000/internal/log"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built dynamically from bootstrap commands plus extension-declared storeless
// commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip store
// initialisation. There are two categories:
//
//  1. Bootstrap commands (init, config) - these help users set up arcaide
//     before a database exists.
//
//  2. Extension-declared storeless commands - extensions implement the
//     Storeless interface to declare commands that manage their own service
//     lifecycle, like serve and mcp.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":   true,
		"config": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *campaign.Service
	initOnce   sync.Once
	initErr    error
)

// LoadConfig loads the user configuration and applies the --db override.
// Extensions that manage their own service lifecycle use this instead of
// the shared context.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if path := DB(); path != "" {
		cfg.Database.Path = &path
	}
	return cfg, nil
}

// initExtensions creates the campaign service and injects it into extensions.
//
// Why sync.Once: The service is expensive to create (opens DB, runs schema
// setup, enables WAL mode) and must be shared across all extensions. We use
// sync.Once to guarantee exactly one initialisation per process.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := LoadConfig()
		if err != nil {
			initErr = err
			return
		}

		svc, err := campaign.New(cfg)
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extService = svc

		// Set database identifier and actor for audit logging
		log.SetDatabase(cfg.DBPath())
		log.SetAuthor(cfg.Author.Name)

		extContext = extension.NewContext(svc, svc.DB(), cfg)

		// Inject the shared context into all Initializable extensions.
		// Extensions receive the service rather than creating it themselves,
		// enabling shared state and proper cleanup.
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Build noStoreCommands after all extensions are registered
		noStoreCommands = buildNoStoreCommands()
	})
}
