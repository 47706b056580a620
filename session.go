package buttons

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	// maxRetries is the max number of retries for rate-limited API calls.
	maxRetries = 3
	// baseBackoff is the initial backoff for rate-limited API calls. Kept
	// short: the interaction acknowledgement window is only a few seconds.
	baseBackoff = 250 * time.Millisecond
	// maxBackoff caps the exponential backoff.
	maxBackoff = 2 * time.Second
)

// session abstracts the discordgo.Session methods the shim uses, enabling
// test mocks. The shim composes a host session behind this interface instead
// of patching or subclassing host types.
type session interface {
	AddHandler(handler interface{}) func()
	Request(method, urlStr string, data interface{}, options ...discordgo.RequestOption) ([]byte, error)
	Guild(guildID string) (*discordgo.Guild, error)
	Channel(channelID string) (*discordgo.Channel, error)
}

// realSession wraps *discordgo.Session to implement the session interface.
// Guild and Channel read the host's state cache; the envelope's guild and
// channel accessors are weak references into it.
type realSession struct {
	s *discordgo.Session
}

func (r *realSession) AddHandler(handler interface{}) func() {
	return r.s.AddHandler(handler)
}
func (r *realSession) Request(method, urlStr string, data interface{}, options ...discordgo.RequestOption) ([]byte, error) {
	return r.s.Request(method, urlStr, data, options...)
}
func (r *realSession) Guild(guildID string) (*discordgo.Guild, error) {
	return r.s.State.Guild(guildID)
}
func (r *realSession) Channel(channelID string) (*discordgo.Channel, error) {
	return r.s.State.Channel(channelID)
}

// retryOnRateLimit calls fn and retries with exponential backoff on Discord
// rate limit errors. It respects context cancellation.
func retryOnRateLimit(ctx context.Context, fn func() error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		// Check if it's a rate limit error.
		restErr, ok := err.(*discordgo.RESTError)
		if !ok || restErr.Response == nil || restErr.Response.StatusCode != 429 {
			return err // not a rate limit error
		}

		if attempt == maxRetries {
			return err
		}

		wait := time.Duration(math.Pow(2, float64(attempt))) * baseBackoff
		if wait > maxBackoff {
			wait = maxBackoff
		}

		log.Printf("buttons: rate limited (attempt %d/%d), retrying in %v",
			attempt+1, maxRetries, wait)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil // unreachable
}
