package uploader

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type putPayload struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha"`
}

func githubStub(t *testing.T, existingSHA string, puts *[]putPayload) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token tok123", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/repos/me/ips/contents/list.txt":
			if existingSHA == "" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			fmt.Fprintf(w, `{"sha": %q}`, existingSHA)
		case r.Method == http.MethodPut && r.URL.Path == "/repos/me/ips/contents/list.txt":
			var p putPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
			*puts = append(*puts, p)
			existingSHA = "sha-" + strconv.Itoa(len(*puts))
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"content": {"html_url": "https://github.com/me/ips/blob/master/list.txt"}}`)
		case r.Method == http.MethodGet && r.URL.Path == "/repos/me/ips":
			fmt.Fprint(w, `{"default_branch": "master"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newGitHubUploader(t *testing.T, srvURL string) *GitHubUploader {
	u := NewGitHubUploader(newClient(t))
	u.apiBase = srvURL
	return u
}

func TestGitHubUploadCreatesFile(t *testing.T) {
	var puts []putPayload
	srv := githubStub(t, "", &puts)
	defer srv.Close()

	res, err := newGitHubUploader(t, srv.URL).Upload(context.Background(),
		testRecords(), "me", "ips", "list.txt", "tok123", 2)
	require.NoError(t, err)

	require.Len(t, puts, 1)
	assert.Empty(t, puts[0].SHA)
	assert.NotEmpty(t, puts[0].Message)

	decoded, err := base64.StdEncoding.DecodeString(puts[0].Content)
	require.NoError(t, err)
	lines := strings.Split(string(decoded), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1.2.3.4:443#香港-2.55MB/s", lines[0])

	assert.Equal(t, 2, res.Uploaded)
	assert.Equal(t, "https://raw.githubusercontent.com/me/ips/master/list.txt", res.RawURL)
	assert.Equal(t, "https://github.com/me/ips/blob/master/list.txt", res.FileURL)
}

func TestGitHubUploadUpdatesInPlace(t *testing.T) {
	var puts []putPayload
	srv := githubStub(t, "existing-sha", &puts)
	defer srv.Close()

	u := newGitHubUploader(t, srv.URL)
	_, err := u.Upload(context.Background(), testRecords(), "me", "ips", "list.txt", "tok123", 1)
	require.NoError(t, err)
	require.Len(t, puts, 1)
	assert.Equal(t, "existing-sha", puts[0].SHA)

	// A second identical upload discovers the new sha and updates rather
	// than conflicting.
	_, err = u.Upload(context.Background(), testRecords(), "me", "ips", "list.txt", "tok123", 1)
	require.NoError(t, err)
	require.Len(t, puts, 2)
	assert.Equal(t, "sha-1", puts[1].SHA)
}

func TestGitHubBlobRoundTrip(t *testing.T) {
	blob := ContentBlob(testRecords(), 10)
	lines := strings.Split(blob, "\n")
	require.Len(t, lines, len(testRecords()))

	for i, line := range lines {
		addr, name, ok := strings.Cut(line, "#")
		require.True(t, ok)
		host, port, ok := strings.Cut(addr, ":")
		require.True(t, ok)

		want := testRecords()[i]
		assert.Equal(t, want.IP, host)
		assert.Equal(t, strconv.Itoa(want.Port), port)
		assert.Equal(t, want.DisplayName(), name)
	}
}

func TestGitHubUploadBadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newGitHubUploader(t, srv.URL).Upload(context.Background(),
		testRecords(), "me", "ips", "list.txt", "bad", 1)
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestGitHubUploadRepoMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newGitHubUploader(t, srv.URL).Upload(context.Background(),
		testRecords(), "me", "nope", "list.txt", "tok", 1)
	assert.ErrorIs(t, err, ErrRepoNotFound)
}

func TestGitHubUploadSurfacesRemoteMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"message": "content too large"}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newGitHubUploader(t, srv.URL).Upload(context.Background(),
		testRecords(), "me", "ips", "list.txt", "tok", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content too large")
}

func TestGitHubUploadRejectsNonPositiveCount(t *testing.T) {
	_, err := newGitHubUploader(t, "http://unused").Upload(context.Background(),
		testRecords(), "me", "ips", "list.txt", "tok", -1)
	assert.Error(t, err)
}

func TestGitHubDefaultBranchFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut:
			fmt.Fprint(w, `{"content": {}}`)
		default:
			// Both the sha probe and the branch probe fail.
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	res, err := newGitHubUploader(t, srv.URL).Upload(context.Background(),
		testRecords(), "me", "ips", "list.txt", "tok", 1)
	require.NoError(t, err)
	assert.Equal(t, "https://raw.githubusercontent.com/me/ips/main/list.txt", res.RawURL)
}
