package uploader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cfst-runner/pkg/httpclient"
	"cfst-runner/pkg/models"
)

func testRecords() []models.MeasurementRecord {
	return []models.MeasurementRecord{
		{IP: "1.2.3.4", Port: 443, SpeedMBps: 2.55, RegionName: "香港"},
		{IP: "5.6.7.8", Port: 2053, SpeedMBps: 1.2, RegionName: "新加坡"},
		{IP: "9.9.9.9", Port: 443, SpeedMBps: 0.8, RegionName: "LAX"},
	}
}

func newClient(t *testing.T) *httpclient.Client {
	t.Helper()
	c, err := httpclient.New("")
	require.NoError(t, err)
	return c
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t,
		"https://example.com/abc123/api/preferred-ips",
		EndpointURL("example.com", "abc123"))
}

func TestUploadClearFirstIssuesDeleteThenPost(t *testing.T) {
	var methods []string
	var batch []models.BatchEntry
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, `{"success": true, "count": 5}`)
		case http.MethodDelete:
			var body map[string]bool
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.True(t, body["all"])
			fmt.Fprint(w, `{"success": true}`)
		case http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
			fmt.Fprintf(w, `{"success": true, "added": %d, "skipped": 0, "failed": 0}`, len(batch))
		}
	}))
	defer srv.Close()

	stats, err := NewAPIUploader(newClient(t)).Upload(context.Background(), testRecords(), srv.URL, 2, true)
	require.NoError(t, err)

	assert.Equal(t, []string{http.MethodGet, http.MethodDelete, http.MethodPost}, methods)
	// The POST batch carries the requested records regardless of the prior count.
	require.Len(t, batch, 2)
	assert.Equal(t, "香港-2.55MB/s", batch[0].Name)
	assert.Equal(t, "1.2.3.4", batch[0].IP)
	assert.Equal(t, 443, batch[0].Port)
	assert.Equal(t, 2, stats.Added)
}

func TestUploadSkipsClearWhenRegistryEmpty(t *testing.T) {
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodGet {
			fmt.Fprint(w, `{"success": true, "count": 0}`)
			return
		}
		fmt.Fprint(w, `{"success": true, "added": 1}`)
	}))
	defer srv.Close()

	_, err := NewAPIUploader(newClient(t)).Upload(context.Background(), testRecords(), srv.URL, 1, true)
	require.NoError(t, err)
	assert.Equal(t, []string{http.MethodGet, http.MethodPost}, methods)
}

func TestUploadProbeFailureDoesNotAbortPost(t *testing.T) {
	var posted bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodDelete:
			w.WriteHeader(http.StatusInternalServerError)
		case http.MethodPost:
			posted = true
			fmt.Fprint(w, `{"success": true, "added": 3}`)
		}
	}))
	defer srv.Close()

	stats, err := NewAPIUploader(newClient(t)).Upload(context.Background(), testRecords(), srv.URL, 10, true)
	require.NoError(t, err)
	assert.True(t, posted)
	assert.Equal(t, 3, stats.Added)
}

func TestUploadCapsAtAvailableRecords(t *testing.T) {
	var batch []models.BatchEntry
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		}
		fmt.Fprint(w, `{"success": true, "count": 0, "added": 3}`)
	}))
	defer srv.Close()

	_, err := NewAPIUploader(newClient(t)).Upload(context.Background(), testRecords(), srv.URL, 50, false)
	require.NoError(t, err)
	assert.Len(t, batch, len(testRecords()))
}

func TestUploadForbiddenIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{"count": 0}`)
	}))
	defer srv.Close()

	_, err := NewAPIUploader(newClient(t)).Upload(context.Background(), testRecords(), srv.URL, 1, false)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUploadSurfacesRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error": "duplicate batch"}`)
			return
		}
		fmt.Fprint(w, `{"count": 0}`)
	}))
	defer srv.Close()

	_, err := NewAPIUploader(newClient(t)).Upload(context.Background(), testRecords(), srv.URL, 1, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate batch")
}

func TestUploadRejectsEmptyInput(t *testing.T) {
	_, err := NewAPIUploader(newClient(t)).Upload(context.Background(), nil, "http://unused", 5, false)
	assert.Error(t, err)
}

func TestUploadRejectsNonPositiveCount(t *testing.T) {
	// A zero cap would POST an empty batch; refuse before any request.
	_, err := NewAPIUploader(newClient(t)).Upload(context.Background(), testRecords(), "http://unused", 0, false)
	assert.Error(t, err)
}
