package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/blocklib"
)

// DefaultAdminURL is the base URL of the admin API.
const DefaultAdminURL = "https://admin.hlx.page"

// Status job polling defaults.
const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultPollAttempts = 20
)

// excludedExtensions lists resource types that are never block pages.
var excludedExtensions = []string{".svg", ".json", ".mp4"}

// Ensure StatusService implements blocklib.URLSource at compile time.
var _ blocklib.URLSource = (*StatusService)(nil)

// StatusService discovers the published pages of a site by running a
// bulk status job against the admin API.
type StatusService struct {
	Org     string
	Project string
	Site    string
	APIKey  string

	client       *http.Client
	adminURL     string
	pollInterval time.Duration
	pollAttempts int
}

// StatusOption configures a StatusService.
type StatusOption func(*StatusService)

// WithClient sets the HTTP client. Defaults to http.DefaultClient.
func WithClient(c *http.Client) StatusOption {
	return func(s *StatusService) {
		s.client = c
	}
}

// WithAdminURL overrides DefaultAdminURL.
func WithAdminURL(u string) StatusOption {
	return func(s *StatusService) {
		s.adminURL = strings.TrimRight(u, "/")
	}
}

// WithPolling sets how often and how many times the job state is polled.
func WithPolling(interval time.Duration, attempts int) StatusOption {
	return func(s *StatusService) {
		s.pollInterval = interval
		s.pollAttempts = attempts
	}
}

// NewStatusService creates a StatusService for the given site. Trailing
// slashes are removed from site so that resource paths join cleanly.
func NewStatusService(org, project, site, apiKey string, opts ...StatusOption) *StatusService {
	s := &StatusService{
		Org:          org,
		Project:      project,
		Site:         strings.TrimRight(site, "/"),
		APIKey:       apiKey,
		client:       http.DefaultClient,
		adminURL:     DefaultAdminURL,
		pollInterval: DefaultPollInterval,
		pollAttempts: DefaultPollAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type statusJob struct {
	State string `json:"state"`
	Links struct {
		Self string `json:"self"`
	} `json:"links"`
}

type statusDetails struct {
	Data struct {
		Resources []statusResource `json:"resources"`
	} `json:"data"`
}

type statusResource struct {
	Path                          string `json:"path"`
	PublishLastModified           string `json:"publishLastModified"`
	PublishConfigRedirectLocation string `json:"publishConfigRedirectLocation"`
}

// DiscoverURLs starts a status job for every path of the site, waits for
// it to stop and returns the absolute URLs of the published pages.
func (s *StatusService) DiscoverURLs(ctx context.Context) ([]string, error) {
	if s.Org == "" || s.Project == "" || s.Site == "" {
		return nil, blocklib.Errorf(blocklib.EINVALID, "organization, project and site are required")
	}
	if s.APIKey == "" {
		return nil, blocklib.Errorf(blocklib.EUNAUTHORIZED, "API key is required")
	}

	jobURL := fmt.Sprintf("%s/status/%s/%s/main/*", s.adminURL, s.Org, s.Project)
	var job statusJob
	if err := s.do(ctx, http.MethodPost, jobURL, map[string][]string{"paths": {"/*"}}, &job); err != nil {
		return nil, fmt.Errorf("start status job: %w", err)
	}
	if job.Links.Self == "" {
		return nil, fmt.Errorf("start status job: response has no job link")
	}

	if err := s.wait(ctx, job.Links.Self); err != nil {
		return nil, err
	}

	var details statusDetails
	if err := s.do(ctx, http.MethodGet, job.Links.Self+"/details", nil, &details); err != nil {
		return nil, fmt.Errorf("fetch job details: %w", err)
	}

	urls := make([]string, 0, len(details.Data.Resources))
	for _, r := range details.Data.Resources {
		if !isPublishedPage(r) {
			continue
		}
		urls = append(urls, s.Site+r.Path)
	}
	return urls, nil
}

// wait polls the job until it reports the stopped state.
func (s *StatusService) wait(ctx context.Context, jobURL string) error {
	for attempt := 1; attempt <= s.pollAttempts; attempt++ {
		var job statusJob
		if err := s.do(ctx, http.MethodGet, jobURL, nil, &job); err != nil {
			return fmt.Errorf("poll status job: %w", err)
		}
		if job.State == "stopped" {
			return nil
		}
		if attempt == s.pollAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.pollInterval):
		}
	}
	return fmt.Errorf("status job did not complete after %d attempts", s.pollAttempts)
}

func (s *StatusService) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return blocklib.Errorf(blocklib.EINVALID, "invalid admin URL %q: %v", url, err)
	}
	req.Header.Set("Authorization", "token "+s.APIKey)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := statusError(resp, url); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// isPublishedPage reports whether a status resource is a live document page.
func isPublishedPage(r statusResource) bool {
	switch {
	case r.PublishConfigRedirectLocation != "":
		return false
	case r.PublishLastModified == "":
		return false
	case strings.HasPrefix(r.Path, "/drafts/"), strings.HasPrefix(r.Path, "/tools"):
		return false
	}
	return !slices.Contains(excludedExtensions, path.Ext(r.Path))
}
