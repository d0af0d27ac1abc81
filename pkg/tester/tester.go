// Package tester drives the external CloudflareST measurement binary. All
// latency and throughput logic lives in that tool; this package only builds
// its command line and interprets its exit code.
package tester

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultSpeedURL is the throughput test target handed to the binary.
const DefaultSpeedURL = "https://speed.cloudflare.com/__down?bytes=999999999"

// DefaultTimeout bounds a full measurement run.
const DefaultTimeout = 120 * time.Second

// Params are the knobs forwarded to the measurement binary.
type Params struct {
	IPFile     string
	Threads    int     // latency probe concurrency, 1-1000
	Count      int     // how many IPs to download-test
	SpeedLimit float64 // MB/s floor
	DelayLimit int     // ms ceiling
	URL        string
	Output     string
}

type Runner struct {
	Bin     string
	Timeout time.Duration
}

func NewRunner(bin string) *Runner {
	return &Runner{Bin: bin, Timeout: DefaultTimeout}
}

// Args renders the flag list for a full test run.
func (r *Runner) Args(p Params) []string {
	url := p.URL
	if url == "" {
		url = DefaultSpeedURL
	}
	return []string{
		"-f", p.IPFile,
		"-n", strconv.Itoa(p.Threads),
		"-dn", strconv.Itoa(p.Count),
		"-sl", strconv.FormatFloat(p.SpeedLimit, 'f', -1, 64),
		"-tl", strconv.Itoa(p.DelayLimit),
		"-url", url,
		"-o", p.Output,
	}
}

// Run executes a full measurement. The child's output streams straight
// through so progress is visible; a non-zero exit invalidates any CSV the
// tool may have left behind.
func (r *Runner) Run(ctx context.Context, p Params) error {
	if p.Threads < 1 || p.Threads > 1000 {
		return fmt.Errorf("thread count must be 1-1000, got %d", p.Threads)
	}
	return r.exec(ctx, r.Args(p))
}

// ScanArgs renders the flag list for an HTTPing region scan: latency-only,
// ceiling lifted so every reachable data center shows up with its colo code.
func (r *Runner) ScanArgs(ipFile, output string) []string {
	return []string{
		"-dd",
		"-tl", "9999",
		"-f", ipFile,
		"-httping",
		"-url", "https://jhb.ovh",
		"-o", output,
	}
}

// Scan runs the latency-only region detection pass.
func (r *Runner) Scan(ctx context.Context, ipFile, output string) error {
	return r.exec(ctx, r.ScanArgs(ipFile, output))
}

func (r *Runner) exec(ctx context.Context, args []string) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	bin := r.Bin
	if !filepath.IsAbs(bin) && !strings.ContainsRune(bin, os.PathSeparator) {
		bin = "." + string(os.PathSeparator) + bin
	}

	log.Printf("executing: %s %s", bin, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("measurement run failed: %w", err)
	}
	log.Println("measurement finished successfully")
	return nil
}
