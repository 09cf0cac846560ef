package traefik

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mtaheri/trftun/pkg/config"
	"github.com/mtaheri/trftun/pkg/logging"

	"gopkg.in/yaml.v3"
)

// Well-known Traefik paths and defaults
const (
	DefaultConfigDir  = "/etc/traefik"
	StaticConfigName  = "traefik.yml"
	DynamicConfigName = "dynamic.yml"

	// DefaultEntryPort is the port the `web` entrypoint listens on.
	DefaultEntryPort = 7000

	// EntryPointName is the entrypoint every tunnel router is attached to.
	EntryPointName = "web"
)

// StaticConfig models the subset of Traefik's static configuration we render.
type StaticConfig struct {
	EntryPoints map[string]EntryPoint `yaml:"entryPoints"`
	Providers   Providers             `yaml:"providers"`
	API         APIConfig             `yaml:"api"`
}

type EntryPoint struct {
	Address string `yaml:"address"`
}

type Providers struct {
	File FileProvider `yaml:"file"`
}

type FileProvider struct {
	Filename string `yaml:"filename"`
}

type APIConfig struct {
	Dashboard bool `yaml:"dashboard"`
	Insecure  bool `yaml:"insecure"`
}

// DynamicConfig models the dynamic configuration holding one router/service
// pair per tunnel.
type DynamicConfig struct {
	HTTP HTTPConfig `yaml:"http"`
}

type HTTPConfig struct {
	Routers  map[string]Router  `yaml:"routers"`
	Services map[string]Service `yaml:"services"`
}

type Router struct {
	EntryPoints []string `yaml:"entryPoints"`
	Service     string   `yaml:"service"`
	Rule        string   `yaml:"rule"`
}

type Service struct {
	LoadBalancer LoadBalancer `yaml:"loadBalancer"`
}

type LoadBalancer struct {
	Servers []Server `yaml:"servers"`
}

type Server struct {
	URL string `yaml:"url"`
}

// BuildStaticConfig assembles the static configuration: the shared `web`
// entrypoint for tunnel traffic, a `traefik` entrypoint on the management API
// port, and the file provider watching the dynamic config in dir.
func BuildStaticConfig(dir string, entryPort, apiPort int) StaticConfig {
	return StaticConfig{
		EntryPoints: map[string]EntryPoint{
			EntryPointName: {Address: fmt.Sprintf(":%d", entryPort)},
			"traefik":      {Address: fmt.Sprintf(":%d", apiPort)},
		},
		Providers: Providers{
			File: FileProvider{Filename: filepath.Join(dir, DynamicConfigName)},
		},
		API: APIConfig{Dashboard: true, Insecure: true},
	}
}

// BuildDynamicConfig assembles a router/service pair per tunnel. An empty
// tunnel list yields empty (but present) router and service maps.
func BuildDynamicConfig(tunnels []config.Tunnel) DynamicConfig {
	cfg := DynamicConfig{
		HTTP: HTTPConfig{
			Routers:  map[string]Router{},
			Services: map[string]Service{},
		},
	}

	for _, t := range tunnels {
		routerName := fmt.Sprintf("router_%d", t.FrontendPort)
		serviceName := fmt.Sprintf("service_%d", t.FrontendPort)

		cfg.HTTP.Routers[routerName] = Router{
			EntryPoints: []string{EntryPointName},
			Service:     serviceName,
			Rule:        "Host(`localhost`) && PathPrefix(`/`)",
		}
		cfg.HTTP.Services[serviceName] = Service{
			LoadBalancer: LoadBalancer{
				Servers: []Server{{URL: fmt.Sprintf("http://%s", t.Backend())}},
			},
		}
	}

	return cfg
}

// WriteStaticConfig renders traefik.yml into dir, creating dir if needed.
func WriteStaticConfig(dir string, entryPort, apiPort int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(BuildStaticConfig(dir, entryPort, apiPort))
	if err != nil {
		return fmt.Errorf("failed to marshal static config: %w", err)
	}

	path := filepath.Join(dir, StaticConfigName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.LogDebug("Wrote static config to %s (entry :%d, api :%d)", path, entryPort, apiPort)
	return nil
}

// WriteDynamicConfig renders dynamic.yml for the given tunnels into dir.
func WriteDynamicConfig(dir string, tunnels []config.Tunnel) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(BuildDynamicConfig(tunnels))
	if err != nil {
		return fmt.Errorf("failed to marshal dynamic config: %w", err)
	}

	path := filepath.Join(dir, DynamicConfigName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.LogDebug("Wrote dynamic config to %s (%d tunnels)", path, len(tunnels))
	return nil
}
