package traefik

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mtaheri/trftun/pkg/logging"
)

// Pinned release, matching the version the tunnel service was validated with.
const (
	DefaultBinPath    = "/usr/local/bin/traefik"
	DefaultReleaseURL = "https://github.com/traefik/traefik/releases/download/v3.1.0/traefik_v3.1.0_linux_amd64.tar.gz"
)

// Installer downloads and installs the Traefik binary.
type Installer struct {
	BinPath    string
	ReleaseURL string
	Client     *http.Client
}

// NewInstaller returns an Installer with the pinned release defaults.
func NewInstaller() *Installer {
	return &Installer{
		BinPath:    DefaultBinPath,
		ReleaseURL: DefaultReleaseURL,
		Client:     http.DefaultClient,
	}
}

// Installed reports whether the Traefik binary is already present.
func (in *Installer) Installed() bool {
	info, err := os.Stat(in.BinPath)
	return err == nil && !info.IsDir()
}

// EnsureBinary installs Traefik if it is not already present: the release
// tarball is fetched over HTTPS and the `traefik` member is extracted to
// BinPath with the executable bit set. Any failure aborts the install.
func (in *Installer) EnsureBinary(ctx context.Context) error {
	if in.Installed() {
		logging.LogDebug("Traefik already installed at %s", in.BinPath)
		return nil
	}

	logging.LogInfo("Downloading Traefik from %s", in.ReleaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, in.ReleaseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := in.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download Traefik: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download Traefik: HTTP %d", resp.StatusCode)
	}

	if err := in.extractBinary(resp.Body); err != nil {
		return fmt.Errorf("failed to extract Traefik: %w", err)
	}

	logging.LogInfo("Traefik installed at %s", in.BinPath)
	return nil
}

// extractBinary scans the gzipped tarball for the traefik member and writes
// it to BinPath.
func (in *Installer) extractBinary(archive io.Reader) error {
	gz, err := gzip.NewReader(archive)
	if err != nil {
		return fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read tar stream: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || filepath.Base(hdr.Name) != "traefik" {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(in.BinPath), 0755); err != nil {
			return fmt.Errorf("failed to create bin directory: %w", err)
		}

		out, err := os.OpenFile(in.BinPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0755)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", in.BinPath, err)
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			os.Remove(in.BinPath)
			return fmt.Errorf("failed to write %s: %w", in.BinPath, err)
		}
		return out.Close()
	}

	return fmt.Errorf("traefik binary not found in release archive")
}
