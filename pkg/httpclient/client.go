// Package httpclient issues HTTP requests through the in-process stack and
// transparently falls back to the curl binary when the process cannot use
// secure transport at all (missing system root store, unsupported scheme).
// Network-level failures are NOT a fallback trigger; they surface to the
// caller so higher layers can decide what to try next.
package httpclient

import (
	"bytes"
	"context"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// ErrToolNotFound reports that an external subprocess dependency (curl, wget)
// is not installed on this host.
var ErrToolNotFound = errors.New("external tool not found")

// DefaultTimeout applies when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Outcome is the uniform result of a request, whichever strategy produced it.
type Outcome struct {
	StatusCode int
	Body       string
}

// JSON decodes the body into v. Decoding is deferred until the caller asks;
// an empty body decodes as an empty object.
func (o *Outcome) JSON(v interface{}) error {
	if strings.TrimSpace(o.Body) == "" {
		return nil
	}
	return json.Unmarshal([]byte(o.Body), v)
}

// Options configures a single request.
type Options struct {
	JSONBody interface{}
	Headers  map[string]string
	Timeout  time.Duration
}

type Client struct {
	http     *http.Client
	curlPath string
}

// New builds a client. socks5Addr, when non-empty, routes the in-process
// stack through a SOCKS5 proxy; the curl fallback always dials direct.
func New(socks5Addr string) (*Client, error) {
	hc := &http.Client{}
	if socks5Addr != "" {
		dialer, err := proxy.SOCKS5("tcp", socks5Addr, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("socks5 dialer: %w", err)
		}
		hc.Transport = &http.Transport{Dial: dialer.Dial}
	}
	return &Client{http: hc, curlPath: "curl"}, nil
}

// Request performs method on url. On a capability-unavailable failure from
// the primary stack it retries once via curl and returns that outcome; any
// other primary-stack error is returned as-is.
func (c *Client) Request(ctx context.Context, method, url string, opts Options) (*Outcome, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body []byte
	if opts.JSONBody != nil {
		b, err := json.Marshal(opts.JSONBody)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = b
	}

	out, err := c.primary(ctx, method, url, body, opts.Headers)
	if err == nil {
		return out, nil
	}
	if !capabilityUnavailable(err) {
		return nil, err
	}
	return c.viaCurl(ctx, method, url, body, opts.Headers, timeout)
}

func (c *Client) primary(ctx context.Context, method, url string, body []byte, headers map[string]string) (*Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return &Outcome{StatusCode: resp.StatusCode, Body: buf.String()}, nil
}

// viaCurl shells out to curl with -w '\n%{http_code}' so the status code
// arrives as the last stdout line, mirroring the primary stack's semantics.
func (c *Client) viaCurl(ctx context.Context, method, url string, body []byte, headers map[string]string, timeout time.Duration) (*Outcome, error) {
	args := []string{
		"-s", "-w", "\n%{http_code}",
		"-X", method,
		"--connect-timeout", strconv.Itoa(int(timeout.Seconds())),
	}
	if body != nil {
		args = append(args, "-H", "Content-Type: application/json")
	}
	for k, v := range headers {
		args = append(args, "-H", fmt.Sprintf("%s: %s", k, v))
	}
	if body != nil {
		args = append(args, "-d", string(body))
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, c.curlPath, args...)
	stdout, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: curl", ErrToolNotFound)
		}
		return nil, fmt.Errorf("curl request failed: %w", err)
	}
	return parseCurlOutput(string(stdout))
}

// parseCurlOutput splits curl's stdout into body and trailing status line.
func parseCurlOutput(out string) (*Outcome, error) {
	trimmed := strings.TrimRight(out, "\n")
	idx := strings.LastIndex(trimmed, "\n")
	var statusLine, body string
	if idx < 0 {
		statusLine = trimmed
	} else {
		statusLine = trimmed[idx+1:]
		body = trimmed[:idx]
	}
	code, err := strconv.Atoi(strings.TrimSpace(statusLine))
	if err != nil {
		return nil, fmt.Errorf("curl output missing status code: %q", statusLine)
	}
	return &Outcome{StatusCode: code, Body: body}, nil
}

// capabilityUnavailable reports whether err means the runtime itself cannot
// perform secure transport, as opposed to the network rejecting us. Only
// these conditions flip a request over to curl.
func capabilityUnavailable(err error) bool {
	var rootsErr x509.SystemRootsError
	if errors.As(err, &rootsErr) {
		return true
	}
	// net/http exposes this one only as text.
	return strings.Contains(err.Error(), "unsupported protocol scheme")
}
