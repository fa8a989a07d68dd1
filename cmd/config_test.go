package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCassandraConfig_Defaults(t *testing.T) {
	t.Setenv("CASSANDRA_HOSTS", "")
	t.Setenv("CASSANDRA_KEYSPACE", "")
	t.Setenv("CASSANDRA_CONSISTENCY", "")
	t.Setenv("CASSANDRA_TIMEOUT", "")

	cfg, err := cassandraConfig{}.resolve()
	require.NoError(t, err)
	assert.Equal(t, defaultCassandraHosts, cfg.Hosts)
	assert.Equal(t, "elections", cfg.Keyspace)
	assert.Equal(t, "QUORUM", cfg.Consistency)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestCassandraConfig_EnvFallback(t *testing.T) {
	t.Setenv("CASSANDRA_HOSTS", "10.0.0.1, 10.0.0.2,")
	t.Setenv("CASSANDRA_KEYSPACE", "sejm")
	t.Setenv("CASSANDRA_CONSISTENCY", "ONE")
	t.Setenv("CASSANDRA_TIMEOUT", "2s")

	cfg, err := cassandraConfig{}.resolve()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Hosts)
	assert.Equal(t, "sejm", cfg.Keyspace)
	assert.Equal(t, "ONE", cfg.Consistency)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestCassandraConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("CASSANDRA_HOSTS", "10.0.0.1")
	t.Setenv("CASSANDRA_KEYSPACE", "sejm")

	cfg, err := cassandraConfig{Hosts: []string{"127.0.0.1"}, Keyspace: "local"}.resolve()
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.Hosts)
	assert.Equal(t, "local", cfg.Keyspace)
}

func TestCassandraConfig_InvalidTimeout(t *testing.T) {
	t.Setenv("CASSANDRA_TIMEOUT", "soon")

	_, err := cassandraConfig{}.resolve()
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("CASSANDRA_KEYSPACE", "")
	os.Unsetenv("CASSANDRA_KEYSPACE")
	path := writeFile(t, ".env", "CASSANDRA_KEYSPACE=from_file\n")

	require.NoError(t, loadEnvFile(path, true))
	assert.Equal(t, "from_file", os.Getenv("CASSANDRA_KEYSPACE"))
}

func TestLoadEnvFile_DoesNotOverrideEnvironment(t *testing.T) {
	t.Setenv("CASSANDRA_KEYSPACE", "from_env")
	path := writeFile(t, ".env", "CASSANDRA_KEYSPACE=from_file\n")

	require.NoError(t, loadEnvFile(path, true))
	assert.Equal(t, "from_env", os.Getenv("CASSANDRA_KEYSPACE"))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	assert.NoError(t, loadEnvFile("no-such.env", false))
	assert.Error(t, loadEnvFile("no-such.env", true))
	assert.NoError(t, loadEnvFile("", true))
}
