package config

import (
	"time"

	"github.com/xedro98/glacier/internal/errors"
)

// Site represents one provisioned website
type Site struct {
	Domain    string    `yaml:"domain"`
	Git       string    `yaml:"git,omitempty"`
	SSL       bool      `yaml:"ssl"`
	CreatedAt time.Time `yaml:"created_at"`
}

// AddSite adds a site to the config
func (c *Config) AddSite(site *Site) error {
	if _, exists := c.Sites[site.Domain]; exists {
		return errors.AlreadyExists(site.Domain)
	}
	c.Sites[site.Domain] = site
	return nil
}

// GetSite returns a site by domain
func (c *Config) GetSite(domain string) (*Site, error) {
	site, exists := c.Sites[domain]
	if !exists {
		return nil, errors.NotFound(domain)
	}
	return site, nil
}

// RemoveSite removes a site from the config
func (c *Config) RemoveSite(domain string) error {
	if _, exists := c.Sites[domain]; !exists {
		return errors.NotFound(domain)
	}
	delete(c.Sites, domain)
	return nil
}

// ListSites returns all sites
func (c *Config) ListSites() []*Site {
	sites := make([]*Site, 0, len(c.Sites))
	for _, s := range c.Sites {
		sites = append(sites, s)
	}
	return sites
}
