package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"courseops/internal/retry"
)

const (
	DefaultProjectPrefix = "cw"
	DefaultAPIURL        = "http://127.0.0.1:7180"
	DefaultDBFileName    = ".courseops.db"
	DefaultBackend       = "local"
	DefaultLogLevel      = "info"

	DefaultRetryAttempts       = 3
	DefaultRetryInitialBackoff = time.Second
	DefaultRetryMaxBackoff     = 8 * time.Second

	configFileName = ".courseops.toml"

	configDirEnvKey          = "COURSEOPS_CONFIG_DIR"
	trustProjectConfigEnvKey = "COURSEOPS_TRUST_PROJECT_CONFIG"
	snapCommonEnvKey         = "SNAP_COMMON"

	backendEnvKey     = "COURSEOPS_BACKEND"
	repoEnvKey        = "COURSEOPS_REPO"
	apiURLEnvKey      = "COURSEOPS_API_URL"
	dbPathEnvKey      = "COURSEOPS_DB"
	rosterEnvKey      = "COURSEOPS_ROSTER"
	tokenEnvKey       = "COURSEOPS_TOKEN"
	githubTokenEnvKey = "GITHUB_TOKEN"
	logLevelEnvKey    = "COURSEOPS_LOG_LEVEL"

	snapCommonConfigRelativePath = "snap/courseops/common/.courseops.toml"
)

// BackendLocal and BackendGitHub are the supported tracker backends.
const (
	BackendLocal  = "local"
	BackendGitHub = "github"
)

// RetryConfig tunes the transient-failure policy for tracker calls.
// Backoffs are duration strings ("1s", "500ms").
type RetryConfig struct {
	Attempts       int    `toml:"attempts"`
	InitialBackoff string `toml:"initial_backoff"`
	MaxBackoff     string `toml:"max_backoff"`
}

// Config defines runtime configuration for courseops. Token never
// comes from a config file; it is env or flag only.
type Config struct {
	Backend        string      `toml:"backend"`
	Repo           string      `toml:"repo"`
	APIURL         string      `toml:"api_url"`
	DBPath         string      `toml:"db_path"`
	ProjectPrefix  string      `toml:"project_prefix"`
	RosterPath     string      `toml:"roster_path"`
	MaxLoad        int         `toml:"max_load"`
	MaxAssignments int         `toml:"max_assignments"`
	LogLevel       string      `toml:"log_level"`
	Retry          RetryConfig `toml:"retry"`

	Token                    string `toml:"-"`
	TrustedProjectConfigPath string `toml:"-"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		Backend:       DefaultBackend,
		APIURL:        DefaultAPIURL,
		ProjectPrefix: DefaultProjectPrefix,
		LogLevel:      DefaultLogLevel,
		Retry: RetryConfig{
			Attempts:       DefaultRetryAttempts,
			InitialBackoff: DefaultRetryInitialBackoff.String(),
			MaxBackoff:     DefaultRetryMaxBackoff.String(),
		},
	}
}

// RetryPolicy converts the retry settings into a policy. Values that
// do not parse fall back to the defaults.
func (c *Config) RetryPolicy() retry.Policy {
	p := retry.Default()
	if c.Retry.Attempts > 0 {
		p.Attempts = c.Retry.Attempts
	}
	if d, err := time.ParseDuration(c.Retry.InitialBackoff); err == nil && d > 0 {
		p.Initial = d
	}
	if d, err := time.ParseDuration(c.Retry.MaxBackoff); err == nil && d > 0 {
		p.Max = d
	}
	return p
}

func loadFile(path string, cfg *Config) error {
	_, err := loadFileIfExists(path, cfg)
	return err
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

func trustProjectConfig() bool {
	raw := strings.TrimSpace(os.Getenv(trustProjectConfigEnvKey))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

func snapCommonEnvConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(snapCommonEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

var allowedKeys = []string{
	"backend",
	"repo",
	"api_url",
	"db_path",
	"project_prefix",
	"roster_path",
	"max_load",
	"max_assignments",
	"log_level",
	"retry.attempts",
	"retry.initial_backoff",
	"retry.max_backoff",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "backend":
		return c.Backend, nil
	case "repo":
		return c.Repo, nil
	case "api_url":
		return c.APIURL, nil
	case "db_path":
		return c.DBPath, nil
	case "project_prefix":
		return c.ProjectPrefix, nil
	case "roster_path":
		return c.RosterPath, nil
	case "max_load":
		return strconv.Itoa(c.MaxLoad), nil
	case "max_assignments":
		return strconv.Itoa(c.MaxAssignments), nil
	case "log_level":
		return c.LogLevel, nil
	case "retry.attempts":
		return strconv.Itoa(c.Retry.Attempts), nil
	case "retry.initial_backoff":
		return c.Retry.InitialBackoff, nil
	case "retry.max_backoff":
		return c.Retry.MaxBackoff, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	homePath := filepath.Join(home, configFileName)
	if info, statErr := os.Stat(homePath); statErr == nil && !info.IsDir() {
		return homePath, nil
	} else if statErr != nil && !os.IsNotExist(statErr) {
		return "", statErr
	}

	if snapEnvPath, ok := snapCommonEnvConfigPath(); ok {
		if info, statErr := os.Stat(snapEnvPath); statErr == nil && !info.IsDir() {
			return snapEnvPath, nil
		} else if statErr != nil && !os.IsNotExist(statErr) {
			return "", statErr
		}
	}

	snapPath := filepath.Join(home, snapCommonConfigRelativePath)
	if info, statErr := os.Stat(snapPath); statErr == nil && !info.IsDir() {
		return snapPath, nil
	} else if statErr != nil && !os.IsNotExist(statErr) {
		return "", statErr
	}

	return homePath, nil
}

// ProjectPath returns the path to the project config file.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from trusted files and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			homePath := filepath.Join(home, configFileName)
			homeLoaded, loadErr := loadFileIfExists(homePath, &cfg)
			if loadErr != nil {
				return nil, loadErr
			}
			if !homeLoaded {
				snapLoaded := false
				if snapEnvPath, ok := snapCommonEnvConfigPath(); ok {
					snapLoaded, loadErr = loadFileIfExists(snapEnvPath, &cfg)
					if loadErr != nil {
						return nil, loadErr
					}
				}
				if !snapLoaded {
					if err := loadFile(filepath.Join(home, snapCommonConfigRelativePath), &cfg); err != nil {
						return nil, err
					}
				}
			}
		}

		if trustProjectConfig() {
			if cwd, err := os.Getwd(); err == nil {
				projectPath := filepath.Join(cwd, configFileName)
				info, statErr := os.Stat(projectPath)
				switch {
				case statErr == nil && !info.IsDir():
					if err := loadFile(projectPath, &cfg); err != nil {
						return nil, err
					}
					cfg.TrustedProjectConfigPath = projectPath
				case statErr != nil && !os.IsNotExist(statErr):
					return nil, statErr
				}
			}
		}
	}

	if cfg.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}

	if backend := os.Getenv(backendEnvKey); backend != "" {
		cfg.Backend = backend
	}
	if repo := os.Getenv(repoEnvKey); repo != "" {
		cfg.Repo = repo
	}
	if apiURL := os.Getenv(apiURLEnvKey); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if dbPath := os.Getenv(dbPathEnvKey); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if rosterPath := os.Getenv(rosterEnvKey); rosterPath != "" {
		cfg.RosterPath = rosterPath
	}
	if logLevel := os.Getenv(logLevelEnvKey); logLevel != "" {
		cfg.LogLevel = logLevel
	}
	cfg.Token = strings.TrimSpace(os.Getenv(tokenEnvKey))
	if cfg.Token == "" {
		cfg.Token = strings.TrimSpace(os.Getenv(githubTokenEnvKey))
	}

	cfg.normalizeDefaults()

	return &cfg, nil
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "backend":
		backend := strings.ToLower(value)
		if backend != BackendLocal && backend != BackendGitHub {
			return nil, fmt.Errorf("backend must be %q or %q", BackendLocal, BackendGitHub)
		}
		return backend, nil
	case "max_load", "max_assignments":
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("%s must be a non-negative integer (0 means unbounded)", key)
		}
		return parsed, nil
	case "log_level":
		level := strings.ToLower(value)
		switch level {
		case "debug", "info", "warn", "error":
			return level, nil
		}
		return nil, fmt.Errorf("log_level must be one of debug, info, warn, error")
	case "retry.attempts":
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return parsed, nil
	case "retry.initial_backoff", "retry.max_backoff":
		parsed, err := time.ParseDuration(value)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive duration such as 500ms or 2s", key)
		}
		return parsed.String(), nil
	default:
		return value, nil
	}
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}

func (c *Config) normalizeDefaults() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if strings.TrimSpace(c.APIURL) == "" {
		c.APIURL = DefaultAPIURL
	}
	if strings.TrimSpace(c.ProjectPrefix) == "" {
		c.ProjectPrefix = DefaultProjectPrefix
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.MaxLoad < 0 {
		c.MaxLoad = 0
	}
	if c.MaxAssignments < 0 {
		c.MaxAssignments = 0
	}
	if c.Retry.Attempts <= 0 {
		c.Retry.Attempts = DefaultRetryAttempts
	}
	if strings.TrimSpace(c.Retry.InitialBackoff) == "" {
		c.Retry.InitialBackoff = DefaultRetryInitialBackoff.String()
	}
	if strings.TrimSpace(c.Retry.MaxBackoff) == "" {
		c.Retry.MaxBackoff = DefaultRetryMaxBackoff.String()
	}
}
