package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. It is loaded, modified
// and saved explicitly; nothing in the tool mutates shared global state.
type Config struct {
	BaseDir     string           `yaml:"base_dir"`
	Issuer      string           `yaml:"issuer"`
	Email       string           `yaml:"email,omitempty"`
	CADirURL    string           `yaml:"ca_dir_url,omitempty"`
	Nameservers []string         `yaml:"nameservers,omitempty"`
	Sites       map[string]*Site `yaml:"sites"`
}

const configDir = ".config/glacier"
const configFile = "config.yaml"

// defaultBaseDir holds the compose stack, site roots, rendered nginx
// configs and certificate storage.
const defaultBaseDir = "/opt/glacier"

// defaultNameservers are the recursive resolvers used for challenge
// record verification.
var defaultNameservers = []string{"8.8.8.8:53", "1.1.1.1:53"}

// New creates a new Config with default values
func New() *Config {
	return &Config{
		BaseDir:     defaultBaseDir,
		Issuer:      "certbot",
		Nameservers: append([]string(nil), defaultNameservers...),
		Sites:       make(map[string]*Site),
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config from disk, returning defaults when no file exists.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Sites == nil {
		cfg.Sites = make(map[string]*Site)
	}
	if len(cfg.Nameservers) == 0 {
		cfg.Nameservers = append([]string(nil), defaultNameservers...)
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// NginxDir returns the directory holding rendered site configs.
func (c *Config) NginxDir() string {
	return filepath.Join(c.BaseDir, "nginx")
}

// SitesDir returns the directory holding site document roots.
func (c *Config) SitesDir() string {
	return filepath.Join(c.BaseDir, "sites")
}

// CertsDir returns the certificate storage root.
func (c *Config) CertsDir() string {
	return filepath.Join(c.BaseDir, "certs")
}

// SiteDir returns the document root for a domain.
func (c *Config) SiteDir(domain string) string {
	return filepath.Join(c.SitesDir(), domain)
}

// ConfPath returns the rendered nginx config path for a domain.
func (c *Config) ConfPath(domain string) string {
	return filepath.Join(c.NginxDir(), domain+".conf")
}
