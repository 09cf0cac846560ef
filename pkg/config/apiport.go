package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mtaheri/trftun/pkg/logging"
)

// DefaultAPIPort is used whenever no valid port has been persisted.
const DefaultAPIPort = 8081

// DefaultAPIPortPath is the well-known location of the persisted API port.
const DefaultAPIPortPath = "/etc/traefik/api_port.conf"

// Valid API port range. Ports below 1024 are privileged and rejected.
const (
	MinAPIPort = 1024
	MaxAPIPort = 65535
)

// ErrInvalidPort is returned when a candidate port string is rejected.
var ErrInvalidPort = errors.New("invalid API port")

var portPattern = regexp.MustCompile(`^[0-9]+$`)

// ParseAPIPort validates a candidate port string. Only all-digit strings with
// a numeric value in [MinAPIPort, MaxAPIPort] are accepted.
func ParseAPIPort(candidate string) (int, error) {
	candidate = strings.TrimSpace(candidate)
	if !portPattern.MatchString(candidate) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPort, candidate)
	}
	port, err := strconv.Atoi(candidate)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPort, candidate)
	}
	if port < MinAPIPort || port > MaxAPIPort {
		return 0, fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidPort, port, MinAPIPort, MaxAPIPort)
	}
	return port, nil
}

// LoadAPIPort reads the persisted API port from path. A missing, empty or
// unparseable file yields DefaultAPIPort.
func LoadAPIPort(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.LogDebug("API port file %s not readable, using default %d: %v", path, DefaultAPIPort, err)
		return DefaultAPIPort
	}
	port, err := ParseAPIPort(string(data))
	if err != nil {
		logging.LogError("API port file %s holds invalid value, using default %d: %v", path, DefaultAPIPort, err)
		return DefaultAPIPort
	}
	return port
}

// SaveAPIPort validates candidate and persists it as the sole contents of
// path. On rejection the file is left untouched and the error describes the
// rejected value; the caller keeps (or falls back to) DefaultAPIPort.
func SaveAPIPort(path, candidate string) (int, error) {
	port, err := ParseAPIPort(candidate)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, []byte(fmt.Sprintf("%d\n", port)), 0644); err != nil {
		return 0, fmt.Errorf("failed to persist API port: %w", err)
	}
	logging.LogInfo("API port set to %d", port)
	return port, nil
}
