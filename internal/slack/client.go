// Package slack provides the Slack Web API calls the summarizer needs:
// channel listing, joining and history.
package slack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	slackapi "github.com/slack-go/slack"
)

const (
	// DefaultAPIURL is the base URL for Slack's Web API.
	DefaultAPIURL = "https://slack.com/api/"

	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ListPageSize is the page size requested from conversations.list.
	ListPageSize = 200

	// MaxPages bounds how many conversations.list pages ListChannels will
	// follow before giving up.
	MaxPages = 500
)

var (
	// ErrPaginationLoop is returned when the listing endpoint hands back a
	// cursor it already returned earlier in the same listing.
	ErrPaginationLoop = errors.New("channel listing cursor repeated")

	// ErrTooManyPages is returned when a listing exceeds MaxPages.
	ErrTooManyPages = errors.New("channel listing exceeded page limit")
)

// Client talks to the Slack Web API with a bot token.
type Client struct {
	token      string
	apiURL     string
	httpClient *http.Client
	log        *slog.Logger
	api        *slackapi.Client
}

// NewClient creates a new Slack client for the given bot token. A nil
// logger falls back to slog.Default().
func NewClient(token string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return newClient(
		token, DefaultAPIURL, &http.Client{Timeout: DefaultHTTPTimeout},
		log.With("component", "slack"),
	)
}

func newClient(token, apiURL string, httpClient *http.Client, log *slog.Logger) *Client {
	return &Client{
		token:      token,
		apiURL:     apiURL,
		httpClient: httpClient,
		log:        log,
		api: slackapi.New(token,
			slackapi.OptionAPIURL(apiURL),
			slackapi.OptionHTTPClient(httpClient),
		),
	}
}

// WithAPIURL returns a new Client that sends requests to apiURL.
// Useful for testing with mock servers.
func (c *Client) WithAPIURL(apiURL string) *Client {
	if !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}
	return newClient(c.token, apiURL, c.httpClient, c.log)
}

// WithHTTPClient returns a new Client with the specified HTTP client.
// Useful for testing with custom transports.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	return newClient(c.token, c.apiURL, client, c.log)
}

// ListChannels returns every channel visible to the token, following the
// conversations.list cursor until Slack reports no further pages.
func (c *Client) ListChannels(ctx context.Context) ([]Channel, error) {
	var (
		channels []Channel
		cursor   string
		seen     = make(map[string]struct{})
	)

	for page := 1; ; page++ {
		if page > MaxPages {
			return nil, fmt.Errorf("%w: stopped after %d pages", ErrTooManyPages, MaxPages)
		}

		batch, next, err := c.api.GetConversationsContext(ctx, &slackapi.GetConversationsParameters{
			Cursor: cursor,
			Limit:  ListPageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("listing channels (page %d): %w", page, err)
		}

		for _, ch := range batch {
			channels = append(channels, channelFromAPI(ch))
		}
		c.log.Debug("Fetched channel page", "page", page, "channels", len(batch))

		if next == "" {
			return channels, nil
		}
		if _, dup := seen[next]; dup {
			return nil, fmt.Errorf("%w: %q on page %d", ErrPaginationLoop, next, page)
		}
		seen[next] = struct{}{}
		cursor = next
	}
}

// JoinChannel adds the bot to a channel. Joining a channel the bot is
// already in succeeds.
func (c *Client) JoinChannel(ctx context.Context, channelID string) error {
	if _, _, _, err := c.api.JoinConversationContext(ctx, channelID); err != nil {
		return fmt.Errorf("joining channel %s: %w", channelID, err)
	}
	return nil
}

// FetchMessages returns the text of up to count most recent messages in a
// channel, in the order Slack returns them (newest first). It first tries
// to join the channel; a failed join is logged and otherwise ignored.
func (c *Client) FetchMessages(ctx context.Context, channelID string, count int) ([]string, error) {
	if err := c.JoinChannel(ctx, channelID); err != nil {
		c.log.Warn("Could not join channel, reading history anyway",
			"channel", channelID, "error", err)
	}

	resp, err := c.api.GetConversationHistoryContext(ctx, &slackapi.GetConversationHistoryParameters{
		ChannelID: channelID,
		Limit:     count,
	})
	var shapeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &shapeErr):
		// A messages value that is not a list counts as no messages.
		c.log.Debug("Unexpected history shape, treating as empty",
			"channel", channelID, "field", shapeErr.Field, "error", err)
		return []string{}, nil
	case err != nil:
		return nil, fmt.Errorf("fetching history for channel %s: %w", channelID, err)
	}

	texts := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		texts = append(texts, m.Text)
	}
	c.log.Debug("Fetched channel history", "channel", channelID, "messages", len(texts))

	return texts, nil
}

func channelFromAPI(ch slackapi.Channel) Channel {
	return Channel{
		ID:         ch.ID,
		Name:       ch.Name,
		IsChannel:  ch.IsChannel,
		IsGroup:    ch.IsGroup,
		IsIM:       ch.IsIM,
		IsMPIM:     ch.IsMpIM,
		IsPrivate:  ch.IsPrivate,
		IsArchived: ch.IsArchived,
		IsMember:   ch.IsMember,
	}
}
