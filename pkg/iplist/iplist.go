// Package iplist prepares the candidate IP files the measurement binary
// consumes and derives secondary lists from its results.
package iplist

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cfst-runner/pkg/colo"
	"cfst-runner/pkg/fetcher"
	"cfst-runner/pkg/result"
)

const (
	IPv4URL  = "https://www.cloudflare.com/ips-v4/"
	IPv4File = "Cloudflare.txt"
	IPv6File = "Cloudflare_ipv6.txt"
)

// EnsureIPv4 downloads the published IPv4 ranges to path unless a usable
// file is already there.
func EnsureIPv4(ctx context.Context, f *fetcher.Fetcher, path string) error {
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		log.Printf("using existing IP file: %s", path)
		return nil
	}
	if err := f.Fetch(ctx, IPv4URL, path); err != nil {
		return fmt.Errorf("fetch IPv4 list: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("downloaded IPv4 list is empty: %s", path)
	}
	return nil
}

// WriteIPv6 generates the candidate file from the built-in range list; the
// published v6 endpoint only carries the top-level blocks.
func WriteIPv6(path string) error {
	var b strings.Builder
	for _, r := range ipv6Ranges {
		b.WriteString(r)
		b.WriteByte('\n')
	}
	if err := writeAtomic(path, b.String()); err != nil {
		return fmt.Errorf("write IPv6 list: %w", err)
	}
	log.Printf("IPv6 list generated: %s (%d ranges)", path, len(ipv6Ranges))
	return nil
}

// WriteRegionList extracts the IPs measured in one region from a scan CSV
// into a plain candidate file. Returns how many IPs it found.
func WriteRegionList(scanCSV, region, outPath string, table *colo.Table) (int, error) {
	records, err := result.ReadRecords(scanCSV, table)
	if err != nil {
		return 0, err
	}
	var b strings.Builder
	count := 0
	for _, rec := range records {
		if rec.RegionCode == region {
			b.WriteString(rec.IP)
			b.WriteByte('\n')
			count++
		}
	}
	if count == 0 {
		return 0, fmt.Errorf("no IPs found for region %s in %s", region, scanCSV)
	}
	if err := writeAtomic(outPath, b.String()); err != nil {
		return 0, err
	}
	return count, nil
}

// WriteProxyList renders a result CSV as ip:port lines for reverse-proxy
// configuration. Returns how many entries were written.
func WriteProxyList(resultCSV, outPath string, table *colo.Table) (int, error) {
	records, err := result.ReadRecords(resultCSV, table)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("no usable rows in %s", resultCSV)
	}
	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "%s:%d\n", rec.IP, rec.Port)
	}
	if err := writeAtomic(outPath, b.String()); err != nil {
		return 0, err
	}
	log.Printf("proxy list generated: %s (%d entries)", outPath, len(records))
	return len(records), nil
}

func writeAtomic(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".iplist-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
