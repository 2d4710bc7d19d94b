package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/telex-integrations/mention-notifier/pkg/domain/model"
	"github.com/telex-integrations/mention-notifier/pkg/domain/types"
)

const defaultTimeout = 10 * time.Second

// Client talks to the channel-membership API. All failures are tagged
// directory_unavailable: the caller aborts the whole batch on any of them.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (mainly for tests)
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// New creates a directory client for the API at baseURL, authenticating
// with the given bearer token
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type listUsersResponse struct {
	Data []struct {
		Email   string `json:"email"`
		Profile struct {
			FullName string `json:"full_name"`
			Username string `json:"username"`
		} `json:"profile"`
	} `json:"data"`
}

// ListUsers fetches the full membership list of a channel
func (c *Client) ListUsers(ctx context.Context, channelID types.ChannelID) ([]*model.Member, error) {
	endpoint := fmt.Sprintf("%s/channels/%s/users", c.baseURL, url.PathEscape(channelID.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build directory request",
			goerr.V("channelID", channelID),
			goerr.T(model.ErrTagDirectoryUnavailable))
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "directory request failed",
			goerr.V("channelID", channelID),
			goerr.T(model.ErrTagDirectoryUnavailable))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("directory returned unexpected status",
			goerr.V("channelID", channelID),
			goerr.V("status", resp.StatusCode),
			goerr.T(model.ErrTagDirectoryUnavailable))
	}

	var body listUsersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, goerr.Wrap(err, "failed to decode directory response",
			goerr.V("channelID", channelID),
			goerr.T(model.ErrTagDirectoryUnavailable))
	}

	members := make([]*model.Member, 0, len(body.Data))
	for _, u := range body.Data {
		members = append(members, &model.Member{
			Email:       u.Email,
			DisplayName: u.Profile.FullName,
			Username:    u.Profile.Username,
		})
	}
	return members, nil
}
