// Package config provides the configuration for mdedit.
//
// Configuration is resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment (MDEDIT_*)  │  ← Highest priority
//	├─────────────────────────────┤
//	│  2. config.toml             │  ← <user config dir>/mdedit/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Command line flags are applied by the caller after Load returns.
//
// # Sub-packages
//
//   - loader: TOML file and environment variable loading, map merging
//
// # Basic Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	width := cfg.Editor.TabWidth
//
// Load from a specific file:
//
//	cfg, err := config.Load(config.WithPath("/etc/mdedit.toml"))
package config
