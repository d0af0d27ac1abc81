// Package installer provisions the CloudflareST measurement binary for the
// host platform: pick the right release archive, download it through the
// fetcher ladder, unpack the executable, mark it runnable.
package installer

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cfst-runner/pkg/fetcher"
)

// DefaultReleaseBase hosts the proxy-capable builds of the measurement tool.
const DefaultReleaseBase = "https://github.com/byJoey/CloudflareSpeedTest/releases/download/v1.0"

// ExecutableName returns the platform-specific binary name.
func ExecutableName() string {
	name := fmt.Sprintf("CloudflareST_proxy_%s_%s", normalizedOS(), runtime.GOARCH)
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return name
}

// ArchiveName returns the release asset for this platform: zip for windows
// and darwin, tar.gz for linux, matching how the releases are published.
func ArchiveName() string {
	base := fmt.Sprintf("CloudflareST_proxy_%s_%s", normalizedOS(), runtime.GOARCH)
	if runtime.GOOS == "linux" {
		return base + ".tar.gz"
	}
	return base + ".zip"
}

func normalizedOS() string {
	if runtime.GOOS == "windows" {
		return "windows"
	}
	return runtime.GOOS
}

type Installer struct {
	fetcher *fetcher.Fetcher
	baseURL string
	dir     string
}

func New(f *fetcher.Fetcher, dir string) *Installer {
	return &Installer{fetcher: f, baseURL: DefaultReleaseBase, dir: dir}
}

// Ensure returns the path to a runnable measurement binary, downloading and
// unpacking it first when absent.
func (i *Installer) Ensure(ctx context.Context) (string, error) {
	binPath := filepath.Join(i.dir, ExecutableName())
	if _, err := os.Stat(binPath); err == nil {
		log.Printf("using existing binary: %s", binPath)
		return binPath, nil
	}

	archive := ArchiveName()
	archivePath := filepath.Join(i.dir, archive)
	url := i.baseURL + "/" + archive
	if err := i.fetcher.Fetch(ctx, url, archivePath); err != nil {
		return "", fmt.Errorf("download measurement binary: %w", err)
	}
	defer os.Remove(archivePath)

	log.Printf("unpacking: %s", archive)
	var err error
	if strings.HasSuffix(archive, ".tar.gz") {
		err = unpackTarGz(archivePath, binPath)
	} else {
		err = unpackZip(archivePath, binPath)
	}
	if err != nil {
		return "", fmt.Errorf("unpack %s: %w", archive, err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(binPath, 0755); err != nil {
			return "", err
		}
	}
	log.Printf("binary ready: %s", binPath)
	return binPath, nil
}

// unpackTarGz extracts the first CloudflareST_proxy_* regular file to dest.
func unpackTarGz(archivePath, dest string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gr.Close()

	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if hdr.Typeflag != tar.TypeReg || !isBinaryEntry(hdr.Name) {
			continue
		}
		return extractTo(dest, tr)
	}
	return fmt.Errorf("no measurement executable in archive")
}

func unpackZip(archivePath, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() || !isBinaryEntry(entry.Name) {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return err
		}
		err = extractTo(dest, rc)
		rc.Close()
		return err
	}
	return fmt.Errorf("no measurement executable in archive")
}

// isBinaryEntry matches the executable while skipping the wrapper scripts
// and readme files the archives also carry.
func isBinaryEntry(name string) bool {
	base := filepath.Base(filepath.ToSlash(name))
	return strings.HasPrefix(base, "CloudflareST_proxy_") &&
		!strings.HasSuffix(base, ".zip") && !strings.HasSuffix(base, ".tar.gz") &&
		!strings.HasSuffix(base, ".txt") && !strings.HasSuffix(base, ".md")
}

func extractTo(dest string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".install-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, dest)
}
