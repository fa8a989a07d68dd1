package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var defaultCassandraHosts = []string{"172.28.0.10", "172.28.0.11", "172.28.0.12", "172.28.0.13"}

const (
	defaultKeyspace    = "elections"
	defaultConsistency = "QUORUM"
	defaultTimeout     = 10 * time.Second
)

type cassandraConfig struct {
	Hosts       []string
	Keyspace    string
	Consistency string
	Timeout     time.Duration
}

// loadEnvFile loads KEY=value pairs from path without overriding variables
// already set. A missing file is not an error unless required.
func loadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !required && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", path, err)
}

// resolve fills unset fields from the environment, then from defaults.
// Fields already set by flags win.
func (c cassandraConfig) resolve() (cassandraConfig, error) {
	if len(c.Hosts) == 0 {
		if hosts := os.Getenv("CASSANDRA_HOSTS"); hosts != "" {
			c.Hosts = splitList(hosts)
		} else {
			c.Hosts = defaultCassandraHosts
		}
	}
	if c.Keyspace == "" {
		c.Keyspace = os.Getenv("CASSANDRA_KEYSPACE")
		if c.Keyspace == "" {
			c.Keyspace = defaultKeyspace
		}
	}
	if c.Consistency == "" {
		c.Consistency = os.Getenv("CASSANDRA_CONSISTENCY")
		if c.Consistency == "" {
			c.Consistency = defaultConsistency
		}
	}
	if c.Timeout == 0 {
		if raw := os.Getenv("CASSANDRA_TIMEOUT"); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return cassandraConfig{}, fmt.Errorf("invalid CASSANDRA_TIMEOUT: %w", err)
			}
			c.Timeout = d
		} else {
			c.Timeout = defaultTimeout
		}
	}
	if len(c.Hosts) == 0 {
		return cassandraConfig{}, errors.New("at least one Cassandra host is required")
	}
	return c, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
