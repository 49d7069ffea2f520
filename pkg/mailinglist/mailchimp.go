package mailinglist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	StatusSubscribed = "subscribed"

	titleMemberExists = "Member Exists"
)

// Member is a subscriber record. Empty names are left out of the merge fields.
type Member struct {
	Email     string
	FirstName string
	LastName  string
}

type memberRequest struct {
	EmailAddress string            `json:"email_address"`
	Status       string            `json:"status"`
	MergeFields  map[string]string `json:"merge_fields,omitempty"`
}

// APIError is Mailchimp's problem-detail error body.
type APIError struct {
	StatusCode int    `json:"status"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Detail     string `json:"detail"`
	Instance   string `json:"instance"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mailchimp: %d %s: %s", e.StatusCode, e.Title, e.Detail)
}

// IsMemberExists reports whether the address is already on the list.
func (e *APIError) IsMemberExists() bool {
	return e.Title == titleMemberExists
}

// IsAuthFailure covers invalid keys (401) and disabled accounts or keys (403).
func (e *APIError) IsAuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

type Mailchimp struct {
	apiKey  string
	listID  string
	baseURL string
	client  *http.Client
}

// NewMailchimp derives the API host from the key's data center suffix
// ("abc123-us21" talks to us21.api.mailchimp.com).
func NewMailchimp(apiKey, listID string, timeout time.Duration) *Mailchimp {
	return &Mailchimp{
		apiKey:  apiKey,
		listID:  listID,
		baseURL: fmt.Sprintf("https://%s.api.mailchimp.com/3.0", DataCenter(apiKey)),
		client:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at another host.
func (m *Mailchimp) WithBaseURL(baseURL string) *Mailchimp {
	m.baseURL = strings.TrimRight(baseURL, "/")
	return m
}

// DataCenter returns the segment after the last "-" of an API key.
func DataCenter(apiKey string) string {
	if i := strings.LastIndex(apiKey, "-"); i >= 0 {
		return apiKey[i+1:]
	}
	return ""
}

// AddMember creates a list member with status "subscribed".
func (m *Mailchimp) AddMember(ctx context.Context, member Member) error {
	payload := memberRequest{
		EmailAddress: member.Email,
		Status:       StatusSubscribed,
	}
	if member.FirstName != "" || member.LastName != "" {
		payload.MergeFields = map[string]string{}
		if member.FirstName != "" {
			payload.MergeFields["FNAME"] = member.FirstName
		}
		if member.LastName != "" {
			payload.MergeFields["LNAME"] = member.LastName
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode member: %w", err)
	}

	url := fmt.Sprintf("%s/lists/%s/members", m.baseURL, m.listID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("anystring", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach mailchimp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("failed to read mailchimp response: %w", err)
	}

	apiErr := &APIError{}
	if err := json.Unmarshal(respBody, apiErr); err != nil {
		apiErr.Detail = strings.TrimSpace(string(respBody))
	}
	apiErr.StatusCode = resp.StatusCode
	return apiErr
}
