package workitem

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	apiVersion       = "7.1-preview.3"
	hierarchyForward = "System.LinkTypes.Hierarchy-Forward"
)

// Client implements API against an Azure DevOps work item tracking service.
type Client struct {
	baseURL string
	auth    string
	client  *http.Client
}

func NewClient(organization, project, pat string) *Client {
	return &Client{
		baseURL: fmt.Sprintf("https://dev.azure.com/%s/%s/_apis/wit/workItems", organization, project),
		auth:    "Basic " + base64.StdEncoding.EncodeToString([]byte(":"+pat)),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) SetBaseURL(url string) {
	c.baseURL = strings.TrimRight(url, "/")
}

// Children returns the ids linked below the given work item through forward
// hierarchy relations.
func (c *Client) Children(ctx context.Context, id int) ([]int, error) {
	url := fmt.Sprintf("%s/%d?$expand=relations&api-version=%s", c.baseURL, id, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.auth)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("work item api error: %d", resp.StatusCode)
	}

	var item struct {
		Relations []struct {
			Rel string `json:"rel"`
			URL string `json:"url"`
		} `json:"relations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, err
	}

	var children []int
	for _, rel := range item.Relations {
		if rel.Rel != hierarchyForward {
			continue
		}
		// The child id is the last path segment of the relation URL.
		segments := strings.Split(rel.URL, "/")
		childID, err := strconv.Atoi(segments[len(segments)-1])
		if err != nil {
			return nil, fmt.Errorf("malformed relation url %q: %w", rel.URL, err)
		}
		children = append(children, childID)
	}
	return children, nil
}

func (c *Client) Delete(ctx context.Context, id int) error {
	url := fmt.Sprintf("%s/%d?api-version=%s", c.baseURL, id, apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.auth)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("delete failed: %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) Update(ctx context.Context, id int, field, value string) error {
	url := fmt.Sprintf("%s/%d?api-version=%s", c.baseURL, id, apiVersion)

	patch := []map[string]string{{
		"op":    "replace",
		"path":  "/fields/" + field,
		"value": value,
	}}
	body, err := json.Marshal(patch)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Content-Type", "application/json-patch+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("update failed: %d", resp.StatusCode)
	}
	return nil
}
