package documents

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
)

const (
	defaultGitHubAPIURL = "https://api.github.com"
	defaultGitHubRawURL = "https://raw.githubusercontent.com"
	defaultBranch       = "main"
	defaultHTTPTimeout  = 30 * time.Second

	// Error bodies are truncated to this many bytes in messages
	maxErrorBody = 200
)

// GitHubConfig configures a GitHub content repository source
type GitHubConfig struct {
	Owner  string
	Repo   string
	Branch string
	Token  string

	// APIURL and RawURL default to the public GitHub endpoints
	APIURL string
	RawURL string

	// RawFallback retries failed contents-API fetches against the raw host
	RawFallback bool

	HTTPClient *http.Client
	Logger     *zap.Logger
}

type gitHubSource struct {
	owner       string
	repo        string
	branch      string
	token       string
	apiURL      string
	rawURL      string
	rawFallback bool
	http        *http.Client
	logger      *zap.Logger
}

// NewGitHub creates a source reading a GitHub repository through the contents API
func NewGitHub(cfg *GitHubConfig) (Source, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("github config is required")
	}
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, dnderr.InvalidArgument("github owner and repo are required")
	}

	s := &gitHubSource{
		owner:       cfg.Owner,
		repo:        cfg.Repo,
		branch:      cfg.Branch,
		token:       cfg.Token,
		apiURL:      strings.TrimRight(cfg.APIURL, "/"),
		rawURL:      strings.TrimRight(cfg.RawURL, "/"),
		rawFallback: cfg.RawFallback,
		http:        cfg.HTTPClient,
		logger:      cfg.Logger,
	}
	if s.branch == "" {
		s.branch = defaultBranch
	}
	if s.apiURL == "" {
		s.apiURL = defaultGitHubAPIURL
	}
	if s.rawURL == "" {
		s.rawURL = defaultGitHubRawURL
	}
	if s.http == nil {
		s.http = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s, nil
}

func (s *gitHubSource) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		s.apiURL, s.owner, s.repo, escapePath(path), url.QueryEscape(s.branch))
}

func (s *gitHubSource) rawFileURL(path string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", s.rawURL, s.owner, s.repo, s.branch, escapePath(path))
}

func escapePath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func (s *gitHubSource) List(ctx context.Context, dir string) ([]DirectoryEntry, error) {
	body, err := s.get(ctx, s.contentsURL(dir), true)
	if err != nil {
		return nil, err
	}

	var entries []DirectoryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeMalformed, "directory listing is not an array").
			WithMeta("path", dir)
	}
	for i := range entries {
		if entries[i].Path == "" && entries[i].Name != "" {
			entries[i].Path = joinPath(dir, entries[i].Name)
		}
	}
	return entries, nil
}

type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

func (s *gitHubSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	data, err := s.fetchContents(ctx, path)
	if err == nil {
		return data, nil
	}
	if !s.rawFallback || ctx.Err() != nil {
		return nil, err
	}

	s.logger.Debug("contents api fetch failed, trying raw host",
		zap.String("path", path),
		zap.Error(err),
	)

	raw, rawErr := s.get(ctx, s.rawFileURL(path), false)
	if rawErr != nil {
		// Keep the not-found signal when either transport says the file is missing
		if dnderr.IsNotFound(err) || dnderr.IsNotFound(rawErr) {
			return nil, dnderr.NotFoundf("document '%s' not found", path).WithMeta("path", path)
		}
		return nil, err
	}
	return raw, nil
}

func (s *gitHubSource) fetchContents(ctx context.Context, path string) ([]byte, error) {
	body, err := s.get(ctx, s.contentsURL(path), true)
	if err != nil {
		return nil, err
	}

	var resp contentsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeMalformed, "unexpected contents response").
			WithMeta("path", path)
	}
	if resp.Content == "" {
		return nil, dnderr.Malformedf("contents response for '%s' has no content", path).
			WithMeta("path", path)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(resp.Content, "\n", ""))
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeMalformed, "invalid base64 content").
			WithMeta("path", path)
	}
	return decoded, nil
}

func (s *gitHubSource) get(ctx context.Context, target string, api bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to build request")
	}
	if api {
		req.Header.Set("Accept", "application/vnd.github.v3+json")
		if s.token != "" {
			req.Header.Set("Authorization", "token "+s.token)
		}
	}

	res, err := s.http.Do(req)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "request failed").
			WithMeta("url", target)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to read response").
			WithMeta("url", target)
	}

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, dnderr.NotFoundf("%s not found", target).WithMeta("url", target)
	case res.StatusCode >= 300:
		snippet := string(body)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, dnderr.Unavailablef("HTTP %d %s: %s", res.StatusCode, target, snippet).
			WithMeta("status", res.StatusCode)
	}
	return body, nil
}
