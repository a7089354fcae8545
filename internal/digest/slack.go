package digest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	slackapi "github.com/slack-go/slack"
)

// maxRetries is the max number of retries for rate-limited API calls.
const maxRetries = 3

// Poster delivers a digest and returns the message timestamp.
type Poster interface {
	Post(ctx context.Context, d Digest) (string, error)
	Channel() string
}

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackPoster posts digests to one Slack channel.
type SlackPoster struct {
	client    slackClient
	channelID string
}

// NewSlackPoster returns a poster using a bot token.
func NewSlackPoster(token, channelID string) *SlackPoster {
	return &SlackPoster{client: slackapi.New(token), channelID: channelID}
}

// Channel returns the target channel ID.
func (p *SlackPoster) Channel() string { return p.channelID }

// Post sends d as a message attachment, retrying on rate limits.
func (p *SlackPoster) Post(ctx context.Context, d Digest) (string, error) {
	var ts string
	err := retryOnRateLimit(ctx, func() error {
		var err error
		_, ts, err = p.client.PostMessage(p.channelID, buildMessageOptions(d)...)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("digest: post to %s: %w", p.channelID, err)
	}
	return ts, nil
}

func buildMessageOptions(d Digest) []slackapi.MsgOption {
	att := slackapi.Attachment{
		Title:    d.Title,
		Text:     d.Body,
		Color:    d.Color,
		Fallback: d.Title,
	}
	for _, f := range d.Fields {
		att.Fields = append(att.Fields, slackapi.AttachmentField{
			Title: f.Name,
			Value: f.Value,
			Short: f.Short,
		})
	}
	return []slackapi.MsgOption{
		slackapi.MsgOptionAttachments(att),
		slackapi.MsgOptionText(d.Title, false),
	}
}

// retryOnRateLimit calls fn and retries with backoff on Slack rate limit errors.
func retryOnRateLimit(ctx context.Context, fn func() error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var rle *slackapi.RateLimitedError
		if !errors.As(err, &rle) || attempt == maxRetries {
			return err
		}

		wait := rle.RetryAfter
		if wait <= 0 {
			wait = time.Duration(math.Pow(2, float64(attempt))) * time.Second
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil
}
