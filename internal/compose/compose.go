// Package compose generates the docker-compose stack definition the
// provisioned sites run behind: an nginx container for the rendered site
// configs and a php-fpm container built from a local Dockerfile.
package compose

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is the docker-compose.yml document.
type File struct {
	Version  string             `yaml:"version"`
	Services map[string]Service `yaml:"services"`
}

// Service is one compose service definition.
type Service struct {
	Image   string   `yaml:"image,omitempty"`
	Build   *Build   `yaml:"build,omitempty"`
	Ports   []string `yaml:"ports,omitempty"`
	Volumes []string `yaml:"volumes,omitempty"`
	Restart string   `yaml:"restart,omitempty"`
}

// Build is a compose build block.
type Build struct {
	Context    string `yaml:"context"`
	Dockerfile string `yaml:"dockerfile"`
}

// phpDockerfile builds the php-fpm image with the extensions the sites need.
const phpDockerfile = `FROM php:7.4-fpm

RUN apt-get update && apt-get install -y \
    libfreetype6-dev \
    libjpeg62-turbo-dev \
    libpng-dev \
    && docker-php-ext-configure gd --with-freetype --with-jpeg \
    && docker-php-ext-install -j$(nproc) gd

RUN docker-php-ext-install pdo pdo_mysql
`

// Default returns the stack definition for a base directory.
func Default() *File {
	return &File{
		Version: "3",
		Services: map[string]Service{
			"nginx": {
				Image: "nginx:latest",
				Ports: []string{"80:80", "443:443"},
				Volumes: []string{
					"./nginx:/etc/nginx/conf.d",
					"./sites:/var/www/html",
					"./certs:/etc/letsencrypt",
				},
				Restart: "always",
			},
			"php": {
				Build: &Build{
					Context:    ".",
					Dockerfile: "Dockerfile-php",
				},
				Volumes: []string{
					"./sites:/var/www/html",
				},
				Restart: "always",
			},
		},
	}
}

// Scaffold creates the base directory layout and writes the compose file
// and PHP Dockerfile. Existing files are overwritten; site data is not
// touched.
func Scaffold(baseDir string) error {
	for _, sub := range []string{"nginx", "sites", "certs"} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", sub, err)
		}
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal compose file: %w", err)
	}
	if err := os.WriteFile(Path(baseDir), data, 0644); err != nil {
		return fmt.Errorf("failed to write compose file: %w", err)
	}

	dockerfile := filepath.Join(baseDir, "Dockerfile-php")
	if err := os.WriteFile(dockerfile, []byte(phpDockerfile), 0644); err != nil {
		return fmt.Errorf("failed to write PHP Dockerfile: %w", err)
	}

	return nil
}

// Path returns the compose file path for a base directory.
func Path(baseDir string) string {
	return filepath.Join(baseDir, "docker-compose.yml")
}
