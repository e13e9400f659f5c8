package uploader

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.github.com"

type GitHubUploadRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

type contentsResponse struct {
	SHA string `json:"sha"`
}

// Uploader publishes files through the GitHub contents API.
type Uploader struct {
	BaseURL string
	Token   string
	Client  *http.Client
	Log     *zap.Logger
}

func New(token string, log *zap.Logger) *Uploader {
	return &Uploader{BaseURL: defaultBaseURL, Token: token, Client: http.DefaultClient, Log: log}
}

func (u *Uploader) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+u.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// currentSHA returns the blob SHA of the file at url, or "" if it does not exist yet.
func (u *Uploader) currentSHA(ctx context.Context, url string) (string, error) {
	req, err := u.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := u.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", nil
	case resp.StatusCode >= 400:
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("error reading file from GitHub, status code: %d, response: %s", resp.StatusCode, string(respBody))
	}

	var existing contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&existing); err != nil {
		return "", fmt.Errorf("error decoding GitHub response: %w", err)
	}
	return existing.SHA, nil
}

// UploadToGitHub creates or replaces path in repo ("owner/name") with the contents of filename.
func (u *Uploader) UploadToGitHub(ctx context.Context, repo, path, filename, message string) error {
	fileContent, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/repos/%s/contents/%s", u.BaseURL, repo, path)
	sha, err := u.currentSHA(ctx, uploadURL)
	if err != nil {
		return err
	}

	bodyJSON, err := json.Marshal(GitHubUploadRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(fileContent),
		SHA:     sha,
	})
	if err != nil {
		return fmt.Errorf("error marshalling JSON: %w", err)
	}

	req, err := u.newRequest(ctx, http.MethodPut, uploadURL, bytes.NewReader(bodyJSON))
	if err != nil {
		return err
	}
	resp, err := u.Client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("error uploading to GitHub, status code: %d, response: %s", resp.StatusCode, string(respBody))
	}

	u.Log.Info("uploaded to GitHub", zap.String("repo", repo), zap.String("path", path), zap.Bool("replaced", sha != ""))
	return nil
}
