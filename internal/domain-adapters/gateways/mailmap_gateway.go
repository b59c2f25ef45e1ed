package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MailMapGateway resolves a project's mailing-list name from committee
// metadata published as JSON. Some committees use a list name that
// differs from the project identifier.
type MailMapGateway struct {
	url        string
	httpClient *http.Client
}

// NewMailMapGateway creates a new mail-map gateway
func NewMailMapGateway(url string) *MailMapGateway {
	return &MailMapGateway{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type committeeInfo struct {
	MailList string `json:"mail_list"`
}

type mailMapResponse struct {
	Committees map[string]committeeInfo `json:"committees"`
}

// ResolveList returns the project's mailing-list name, or "" when the
// project has no committee entry.
func (g *MailMapGateway) ResolveList(ctx context.Context, project string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", g.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mail map request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mail map request returned status %d", resp.StatusCode)
	}

	var mailMap mailMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&mailMap); err != nil {
		return "", fmt.Errorf("failed to decode mail map: %w", err)
	}

	return mailMap.Committees[project].MailList, nil
}
