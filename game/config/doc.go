// Package config provides ruleset management for Blockdoku.
//
// The config package handles:
//   - Loading rulesets from JSON or YAML files
//   - Ruleset validation
//   - Default ruleset management
//   - Ruleset discovery and listing
//
// Ruleset Format:
//
// Rulesets are stored as <name>.json, <name>.yaml or <name>.yml in the configs
// directory. When several files share a name, JSON wins. Each ruleset defines:
//   - A name and description
//   - An optional starting layout of 9 rows using '#' (occupied) and '.' (empty)
//   - An optional random starting fill
//   - Messages shown by the front ends
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load a specific ruleset
//	gameConfig, err := manager.LoadConfig("scattered")
//
//	// Get the default ruleset (classic, or the built-in one)
//	defaultConfig := manager.GetDefault()
//
//	// List available rulesets
//	configs, err := manager.ListConfigs()
package config
