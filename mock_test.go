package buttons

import (
	"encoding/json"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// recordedRequest captures one REST round-trip made through the mock session.
type recordedRequest struct {
	Method string
	URL    string
	Body   any
}

// mockSession implements the session interface for tests. It records every
// request and hands back canned responses, and stores the raw-event handler
// installed via AddHandler so tests can feed synthetic gateway events.
type mockSession struct {
	mu       sync.Mutex
	requests []recordedRequest
	response []byte
	err      error

	handler func(*discordgo.Session, *discordgo.Event)
	removed bool

	guild   *discordgo.Guild
	channel *discordgo.Channel
}

func (m *mockSession) AddHandler(handler interface{}) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fn, ok := handler.(func(*discordgo.Session, *discordgo.Event)); ok {
		m.handler = fn
	}
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.removed = true
	}
}

func (m *mockSession) Request(method, urlStr string, data interface{}, options ...discordgo.RequestOption) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, recordedRequest{Method: method, URL: urlStr, Body: data})
	return m.response, m.err
}

func (m *mockSession) Guild(guildID string) (*discordgo.Guild, error) {
	return m.guild, nil
}

func (m *mockSession) Channel(channelID string) (*discordgo.Channel, error) {
	return m.channel, nil
}

func (m *mockSession) recorded() []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]recordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// bodyJSON re-encodes a recorded request body for shape assertions.
func bodyJSON(body any) (string, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
