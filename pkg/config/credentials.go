package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CredentialFile is the flat key-value store for remembered upload targets.
// Plaintext and human-inspectable on purpose; it lives next to the binary.
const CredentialFile = ".cloudflare_speedtest_config.json"

// Credentials mirrors the on-disk JSON. Fields are filled per upload target
// and cleared independently; the file itself is always rewritten whole.
type Credentials struct {
	WorkerDomain   string `json:"worker_domain,omitempty"`
	UUID           string `json:"uuid,omitempty"`
	GitHubToken    string `json:"github_token,omitempty"`
	RepoInfo       string `json:"repo_info,omitempty"`
	FilePath       string `json:"file_path,omitempty"`
	APILastUsed    string `json:"api_last_used,omitempty"`
	GitHubLastUsed string `json:"github_last_used,omitempty"`
}

// LoadCredentials reads the saved file. Absent file yields empty
// credentials; a corrupt file is an error so the caller can warn and move on.
func LoadCredentials(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return &c, nil
}

// RememberAPI records a working registry target and stamps its last use.
func (c *Credentials) RememberAPI(workerDomain, uuid string) {
	c.WorkerDomain = workerDomain
	c.UUID = uuid
	c.APILastUsed = time.Now().Format("2006-01-02 15:04:05")
}

// RememberGitHub records a working repository target and stamps its last use.
func (c *Credentials) RememberGitHub(token, repoInfo, filePath string) {
	c.GitHubToken = token
	c.RepoInfo = repoInfo
	if filePath != "" {
		c.FilePath = filePath
	}
	c.GitHubLastUsed = time.Now().Format("2006-01-02 15:04:05")
}

// Save rewrites the whole file atomically: either the new content lands or
// the previous file survives untouched.
func (c *Credentials) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".creds-*")
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("save credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("save credentials: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// ClearCredentials removes the saved file. Missing file is fine.
func ClearCredentials(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}
