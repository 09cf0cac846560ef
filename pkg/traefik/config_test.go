package traefik

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mtaheri/trftun/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteStaticConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteStaticConfig(dir, 7000, 8081))

	data, err := os.ReadFile(filepath.Join(dir, StaticConfigName))
	require.NoError(t, err)

	var cfg StaticConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))

	assert.Equal(t, ":7000", cfg.EntryPoints[EntryPointName].Address)
	assert.Equal(t, ":8081", cfg.EntryPoints["traefik"].Address)
	assert.Equal(t, filepath.Join(dir, DynamicConfigName), cfg.Providers.File.Filename)
	assert.True(t, cfg.API.Dashboard)
	assert.True(t, cfg.API.Insecure)
}

func TestWriteDynamicConfig(t *testing.T) {
	dir := t.TempDir()
	tunnels := []config.Tunnel{
		{ID: "t8443", FrontendPort: 8443, BackendHost: "192.168.1.100", BackendPort: 80},
		{ID: "t9001", FrontendPort: 9001, BackendHost: "2001:db8::1", BackendPort: 8080},
	}

	require.NoError(t, WriteDynamicConfig(dir, tunnels))

	data, err := os.ReadFile(filepath.Join(dir, DynamicConfigName))
	require.NoError(t, err)

	var cfg DynamicConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))

	require.Len(t, cfg.HTTP.Routers, 2)
	require.Len(t, cfg.HTTP.Services, 2)

	router := cfg.HTTP.Routers["router_8443"]
	assert.Equal(t, []string{EntryPointName}, router.EntryPoints)
	assert.Equal(t, "service_8443", router.Service)
	assert.Equal(t, "Host(`localhost`) && PathPrefix(`/`)", router.Rule)

	svc := cfg.HTTP.Services["service_8443"]
	require.Len(t, svc.LoadBalancer.Servers, 1)
	assert.Equal(t, "http://192.168.1.100:80", svc.LoadBalancer.Servers[0].URL)

	svc = cfg.HTTP.Services["service_9001"]
	require.Len(t, svc.LoadBalancer.Servers, 1)
	assert.Equal(t, "http://2001:db8::1:8080", svc.LoadBalancer.Servers[0].URL)
}

func TestWriteDynamicConfigEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDynamicConfig(dir, nil))

	data, err := os.ReadFile(filepath.Join(dir, DynamicConfigName))
	require.NoError(t, err)

	var cfg DynamicConfig
	require.NoError(t, yaml.Unmarshal(data, &cfg))

	// Router and service maps must be present but empty so Traefik drops
	// all routes when the last tunnel is deleted.
	assert.Contains(t, string(data), "routers:")
	assert.Contains(t, string(data), "services:")
	assert.Empty(t, cfg.HTTP.Routers)
	assert.Empty(t, cfg.HTTP.Services)
}
