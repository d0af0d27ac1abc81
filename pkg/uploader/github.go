package uploader

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"cfst-runner/pkg/httpclient"
	"cfst-runner/pkg/models"
)

var (
	// ErrBadCredentials reports a 401: bad token or missing repo scope.
	ErrBadCredentials = errors.New("github rejected the token")
	// ErrRepoNotFound reports a 404 on the write: wrong owner/repo or no
	// write permission for this token.
	ErrRepoNotFound = errors.New("repository not found or not writable")
)

const defaultAPIBase = "https://api.github.com"

type GitHubUploader struct {
	client  *httpclient.Client
	apiBase string
}

func NewGitHubUploader(client *httpclient.Client) *GitHubUploader {
	return &GitHubUploader{client: client, apiBase: defaultAPIBase}
}

// RepoUploadResult reports where the uploaded list landed.
type RepoUploadResult struct {
	FileURL  string
	RawURL   string
	Uploaded int
}

// ContentBlob renders the capped record list as the newline-joined
// ip:port#name text committed to the repository.
func ContentBlob(records []models.MeasurementRecord, maxCount int) string {
	lines := make([]string, 0, maxCount)
	for _, rec := range models.Cap(records, maxCount) {
		lines = append(lines, rec.Line())
	}
	return strings.Join(lines, "\n")
}

// Upload creates or updates path in owner/repo with the rendered record
// list. An existing file's sha is discovered first and echoed back on the
// write so concurrent edits fail loudly instead of being clobbered.
func (u *GitHubUploader) Upload(ctx context.Context, records []models.MeasurementRecord, owner, repo, path, token string, maxCount int) (*RepoUploadResult, error) {
	if len(records) == 0 {
		return nil, errors.New("no records to upload")
	}
	if maxCount < 1 {
		return nil, fmt.Errorf("upload count must be at least 1, got %d", maxCount)
	}

	headers := map[string]string{
		"Authorization": "token " + token,
		"Accept":        "application/vnd.github.v3+json",
	}
	contentsURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s", u.apiBase, owner, repo, path)

	// Best-effort sha discovery; an unreadable state just means we try the
	// write without one.
	var sha string
	if out, err := u.client.Request(ctx, http.MethodGet, contentsURL, httpclient.Options{Headers: headers, Timeout: probeTimeout}); err != nil {
		log.Printf("could not check existing file state: %v", err)
	} else if out.StatusCode == http.StatusOK {
		var existing struct {
			SHA string `json:"sha"`
		}
		if err := out.JSON(&existing); err == nil {
			sha = existing.SHA
			log.Println("file exists, will update in place")
		}
	} else if out.StatusCode == http.StatusNotFound {
		log.Println("file does not exist yet, will create it")
	}

	capped := models.Cap(records, maxCount)
	blob := ContentBlob(capped, len(capped))
	payload := map[string]string{
		"message": fmt.Sprintf("更新Cloudflare优选IP列表 - %s", time.Now().Format("2006-01-02 15:04:05")),
		"content": base64.StdEncoding.EncodeToString([]byte(blob)),
	}
	if sha != "" {
		payload["sha"] = sha
	}

	out, err := u.client.Request(ctx, http.MethodPut, contentsURL, httpclient.Options{
		JSONBody: payload,
		Headers:  headers,
		Timeout:  uploadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("github upload: %w", err)
	}

	switch out.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusUnauthorized:
		return nil, ErrBadCredentials
	case http.StatusNotFound:
		return nil, ErrRepoNotFound
	default:
		var detail struct {
			Message string `json:"message"`
		}
		_ = out.JSON(&detail)
		return nil, fmt.Errorf("github upload failed (HTTP %d): %s", out.StatusCode, remoteError(detail.Message))
	}

	var created struct {
		Content struct {
			HTMLURL string `json:"html_url"`
		} `json:"content"`
	}
	_ = out.JSON(&created)

	return &RepoUploadResult{
		FileURL:  created.Content.HTMLURL,
		RawURL:   fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", owner, repo, u.defaultBranch(ctx, owner, repo, headers), path),
		Uploaded: len(capped),
	}, nil
}

// defaultBranch probes the repo for its default branch so the raw URL stays
// valid on repos that never renamed master. Failure falls back to main.
func (u *GitHubUploader) defaultBranch(ctx context.Context, owner, repo string, headers map[string]string) string {
	out, err := u.client.Request(ctx, http.MethodGet, fmt.Sprintf("%s/repos/%s/%s", u.apiBase, owner, repo), httpclient.Options{Headers: headers, Timeout: probeTimeout})
	if err != nil || out.StatusCode != http.StatusOK {
		return "main"
	}
	var info struct {
		DefaultBranch string `json:"default_branch"`
	}
	if err := out.JSON(&info); err != nil || info.DefaultBranch == "" {
		return "main"
	}
	return info.DefaultBranch
}
