// Package onedrive downloads the journal file from OneDrive through the
// Microsoft Graph API. Authentication is the confidential-client
// refresh-token grant: the stored refresh token is exchanged for an access
// token at startup with no user interaction.
package onedrive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

// graphBaseURL is the Microsoft Graph v1.0 endpoint.
const graphBaseURL = "https://graph.microsoft.com/v1.0"

// personal OneDrive accounts authenticate against the consumers tenant
const tenant = "consumers"

var scopes = []string{"Files.Read", "Files.Read.All"}

// Credentials holds the registered application's identity and the stored
// refresh token obtained during the one-time interactive consent.
type Credentials struct {
	ApplicationID string
	ClientSecret  string
	RefreshToken  string
}

// Client talks to Microsoft Graph with automatic token refresh.
type Client struct {
	// HTTPClient must attach authorization; New builds it from the token
	// source. Tests may substitute any client.
	HTTPClient *http.Client
	// BaseURL overrides the Graph endpoint, used by tests. Empty means
	// the production endpoint.
	BaseURL string
}

// New exchanges the refresh token for an access token and returns a client
// whose requests carry it. The exchange happens eagerly so an expired or
// revoked refresh token fails the run at startup rather than mid-pipeline.
func New(ctx context.Context, creds Credentials) (*Client, error) {
	return newClient(ctx, creds, microsoft.AzureADEndpoint(tenant))
}

func newClient(ctx context.Context, creds Credentials, endpoint oauth2.Endpoint) (*Client, error) {
	conf := &oauth2.Config{
		ClientID:     creds.ApplicationID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       scopes,
	}
	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
	tok, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("acquire access token: %w", err)
	}
	// Microsoft may rotate the refresh token on exchange. The rotated value
	// only lives inside this process's token source, so the operator must
	// persist it or a later run's stored token may stop working.
	if tok.RefreshToken != "" && tok.RefreshToken != creds.RefreshToken {
		log.Warn().Msg("identity service issued a new refresh token; update the stored REFRESH_TOKEN before it expires")
	}
	return &Client{HTTPClient: oauth2.NewClient(ctx, ts)}, nil
}

func (c *Client) base() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return graphBaseURL
}

// Download fetches a drive item's content by item ID and returns the raw
// bytes. Graph answers the content request with a redirect to a short-lived
// download URL, which the HTTP client follows.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	u := c.base() + "/me/drive/items/" + url.PathEscape(fileID) + "/content"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("download %s: graph returned %s: %s", fileID, resp.Status, body)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read download body: %w", err)
	}
	return data, nil
}
