// Package uploader pushes measurement results to their two remote homes: the
// preferred-IP registry worker and a GitHub repository file.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"cfst-runner/pkg/httpclient"
	"cfst-runner/pkg/models"
)

// ErrForbidden reports a 403 from the registry: the path token is wrong or
// API management is disabled on the worker. Distinct from a generic HTTP
// failure so callers can tell the user what to fix.
var ErrForbidden = errors.New("registry rejected the path token")

const (
	probeTimeout  = 10 * time.Second
	uploadTimeout = 30 * time.Second
)

// EndpointURL builds the registry endpoint. The opaque token rides in the
// path, not a header; that is the worker's auth scheme.
func EndpointURL(workerDomain, token string) string {
	return fmt.Sprintf("https://%s/%s/api/preferred-ips", workerDomain, token)
}

type APIUploader struct {
	client *httpclient.Client
}

func NewAPIUploader(client *httpclient.Client) *APIUploader {
	return &APIUploader{client: client}
}

type registryResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Added   int    `json:"added"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
	Error   string `json:"error"`
}

// Upload posts the first maxCount records to the registry at endpoint. The
// GET probe and optional DELETE are best-effort: their failures are logged
// and the POST still goes out.
func (u *APIUploader) Upload(ctx context.Context, records []models.MeasurementRecord, endpoint string, maxCount int, clearFirst bool) (*models.UploadStats, error) {
	if len(records) == 0 {
		return nil, errors.New("no records to upload")
	}
	if maxCount < 1 {
		return nil, fmt.Errorf("upload count must be at least 1, got %d", maxCount)
	}

	if clearFirst {
		shouldClear := true
		out, err := u.client.Request(ctx, http.MethodGet, endpoint, httpclient.Options{Timeout: probeTimeout})
		if err != nil {
			log.Printf("registry probe failed: %v (will clear anyway)", err)
		} else if out.StatusCode == http.StatusOK {
			var probe registryResponse
			if err := out.JSON(&probe); err == nil && probe.Count == 0 {
				shouldClear = false
			}
		}
		if shouldClear {
			u.clear(ctx, endpoint)
		}
	} else {
		// Probe purely for operator feedback; accumulation is their choice.
		if out, err := u.client.Request(ctx, http.MethodGet, endpoint, httpclient.Options{Timeout: probeTimeout}); err == nil && out.StatusCode == http.StatusOK {
			var probe registryResponse
			if err := out.JSON(&probe); err == nil && probe.Count > 0 {
				log.Printf("registry already holds %d preferred IPs; pass -clear to replace them", probe.Count)
			}
		}
	}

	batch := make([]models.BatchEntry, 0, maxCount)
	for _, rec := range models.Cap(records, maxCount) {
		batch = append(batch, rec.BatchEntry())
	}

	out, err := u.client.Request(ctx, http.MethodPost, endpoint, httpclient.Options{
		JSONBody: batch,
		Timeout:  uploadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("registry upload: %w", err)
	}

	switch {
	case out.StatusCode == http.StatusOK:
		var resp registryResponse
		if err := out.JSON(&resp); err != nil {
			return nil, fmt.Errorf("registry response not parseable: %w", err)
		}
		if !resp.Success {
			return nil, fmt.Errorf("registry refused the batch: %s", remoteError(resp.Error))
		}
		return &models.UploadStats{Added: resp.Added, Skipped: resp.Skipped, Failed: resp.Failed}, nil
	case out.StatusCode == http.StatusForbidden:
		return nil, ErrForbidden
	default:
		var resp registryResponse
		_ = out.JSON(&resp)
		return nil, fmt.Errorf("registry upload failed (HTTP %d): %s", out.StatusCode, remoteError(resp.Error))
	}
}

func (u *APIUploader) clear(ctx context.Context, endpoint string) {
	out, err := u.client.Request(ctx, http.MethodDelete, endpoint, httpclient.Options{
		JSONBody: map[string]bool{"all": true},
		Timeout:  probeTimeout,
	})
	if err != nil {
		log.Printf("registry clear failed: %v (continuing with upload)", err)
		return
	}
	if out.StatusCode != http.StatusOK {
		log.Printf("registry clear failed (HTTP %d), continuing with upload", out.StatusCode)
		return
	}
	log.Println("existing registry entries cleared")
}

func remoteError(msg string) string {
	if msg == "" {
		return "no detail provided"
	}
	return msg
}
