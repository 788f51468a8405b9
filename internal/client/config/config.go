// Package config handles configuration for the client component.
package config

import (
	"flag"
	"os"

	"authd/internal/flagx"
)

// Config holds runtime settings for the terminal client.
type Config struct {
	ServerAddr string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://localhost:8080"
}

// LoadConfig builds a Config by applying defaults and overlaying
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.parseFlags()
	return cfg
}

// parseFlags populates Config fields from command-line flags.
//
//	-a string   server base URL (e.g., "http://localhost:8080")
func (c *Config) parseFlags() {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&c.ServerAddr, "a", c.ServerAddr, "server base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
