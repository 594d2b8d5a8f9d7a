package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/blockdoku/game/engine"
	"github.com/wricardo/blockdoku/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultName is the ruleset used when none is requested
const DefaultName = "classic"

// Extensions are the ruleset file extensions, in lookup order
var Extensions = []string{".json", ".yaml", ".yml"}

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a configuration by name. The name may carry one of the
// supported extensions; without one, the first of .json, .yaml and .yml that
// exists on disk backs the ruleset, even when it fails to parse.
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	_, config, err := m.load(name)
	return config, err
}

// load resolves name to a file and returns it with its parsed ruleset.
// The cache is keyed by resolved filename so "classic" and "classic.yaml"
// never share an entry unless they name the same file.
func (m *Manager) load(name string) (string, *engine.GameConfig, error) {
	filename, err := m.resolveConfigFile(name)
	if err != nil {
		return "", nil, err
	}

	m.mu.RLock()
	if config, exists := m.configs[filename]; exists {
		m.mu.RUnlock()
		return filename, config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[filename]; exists {
		return filename, config, nil
	}

	configPath := filepath.Join(m.configDir, filename)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, ErrConfigNotFound
		}
		return "", nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := engine.UnmarshalGameConfig(configPath, data)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := engine.ValidateGameConfig(config); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[filename] = config
	return filename, config, nil
}

// resolveConfigFile returns the base filename backing a ruleset name
func (m *Manager) resolveConfigFile(name string) (string, error) {
	name = filepath.Base(name)
	candidates := []string{name}
	if !hasConfigExtension(name) {
		candidates = candidates[:0]
		for _, ext := range Extensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, filename := range candidates {
		info, err := os.Stat(filepath.Join(m.configDir, filename))
		if err == nil && !info.IsDir() {
			return filename, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return "", ErrConfigNotFound
}

// ListConfigs returns information about all available configurations
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !hasConfigExtension(entry.Name()) {
			continue
		}

		// classic.json shadows classic.yaml, valid or not
		name := configID(entry.Name())
		if seen[name] {
			continue
		}
		seen[name] = true

		filename, config, err := m.load(name)
		if err != nil {
			// Skip invalid configs
			continue
		}

		info := &service.ConfigInfo{
			Filename:    filename,
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			RandomFill:  config.RandomFill,
		}
		if len(config.Layout) > 0 {
			if board, err := engine.ParseLayout(config.Layout); err == nil {
				info.Prefilled = board.Occupied()
			}
		}
		configs = append(configs, info)
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache reloads all cached configurations from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// loadDefaultConfig loads the default configuration
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig(DefaultName)
	if err != nil {
		// Try to load the first available config
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			config = engine.DefaultGameConfig()
		} else if config, err = m.LoadConfig(configs[0].ConfigID); err != nil {
			config = engine.DefaultGameConfig()
		}
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
	return nil
}

// SaveConfig saves a configuration to disk as JSON
func (m *Manager) SaveConfig(name string, config *engine.GameConfig) error {
	if err := engine.ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	key := configID(name)
	if key == "" || key != filepath.Base(key) {
		return fmt.Errorf("%w: invalid config name %q", ErrInvalidConfig, name)
	}

	configPath := filepath.Join(m.configDir, key+".json")

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[key+".json"] = config
	m.mu.Unlock()

	return nil
}

func hasConfigExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// configID strips a supported extension from a file or ruleset name
func configID(name string) string {
	if hasConfigExtension(name) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
