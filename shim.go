package buttons

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/bwmarrin/discordgo"
)

// interactionCreateEvent is the raw gateway event carrying component
// interactions on host versions without native component support.
const interactionCreateEvent = "INTERACTION_CREATE"

// hostVersionConstraint is the discordgo release range the shim supports:
// the pre-1.0 series this compatibility layer was written against.
const hostVersionConstraint = ">= 0.20.0, < 1.0.0"

// Process-wide attach registry. Attaching the same session twice is a no-op
// returning the existing shim; multiple distinct sessions per process are
// supported.
var (
	attachMu sync.Mutex
	attached = make(map[*discordgo.Session]*Shim)
)

type handlerReg struct {
	id int
	fn func(*Interaction)
}

// Shim surfaces component interactions from one host session and exposes the
// component-aware message send/edit surface.
type Shim struct {
	sess session
	host *discordgo.Session
	out  io.Writer

	mu             sync.Mutex
	nextHandler    int
	buttonHandlers []handlerReg
	menuHandlers   []handlerReg
	removeHandler  func()
}

// Attach installs the shim on a discordgo session. It fails fast with
// ErrInvalidHostHandle for a nil session and ErrInvalidHostVersion for an
// unsupported discordgo release, before any event wiring. Attach is
// idempotent per session.
func Attach(s *discordgo.Session) (*Shim, error) {
	if s == nil {
		return nil, fmt.Errorf("buttons: attach: %w", ErrInvalidHostHandle)
	}
	if err := checkHostVersion(discordgo.VERSION); err != nil {
		return nil, err
	}

	attachMu.Lock()
	defer attachMu.Unlock()
	if sh, ok := attached[s]; ok {
		return sh, nil
	}

	sh := newShim(&realSession{s: s}, os.Stdout)
	sh.host = s
	sh.install()
	attached[s] = sh
	return sh, nil
}

// Detach removes the shim's gateway subscription and unregisters the session,
// allowing a later re-attach.
func (sh *Shim) Detach() {
	attachMu.Lock()
	if sh.host != nil {
		delete(attached, sh.host)
	}
	attachMu.Unlock()

	sh.mu.Lock()
	remove := sh.removeHandler
	sh.removeHandler = nil
	sh.mu.Unlock()
	if remove != nil {
		remove()
	}
}

func newShim(sess session, out io.Writer) *Shim {
	if out == nil {
		out = os.Stdout
	}
	return &Shim{sess: sess, out: out}
}

func (sh *Shim) install() {
	sh.removeHandler = sh.sess.AddHandler(func(_ *discordgo.Session, e *discordgo.Event) {
		sh.handleEvent(e)
	})
}

// checkHostVersion gates installation on the supported discordgo release
// range.
func checkHostVersion(version string) error {
	c, err := semver.NewConstraint(hostVersionConstraint)
	if err != nil {
		return fmt.Errorf("buttons: host version constraint: %w", err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("buttons: host version %q: %w", version, ErrInvalidHostVersion)
	}
	if !c.Check(v) {
		return fmt.Errorf("buttons: host version %s outside %q: %w", version, hostVersionConstraint, ErrInvalidHostVersion)
	}
	return nil
}

// OnButtonClick registers a handler for button-click interactions and returns
// a function that removes it.
func (sh *Shim) OnButtonClick(fn func(*Interaction)) func() {
	return sh.register(&sh.buttonHandlers, fn)
}

// OnMenuSelect registers a handler for select-menu interactions and returns a
// function that removes it.
func (sh *Shim) OnMenuSelect(fn func(*Interaction)) func() {
	return sh.register(&sh.menuHandlers, fn)
}

func (sh *Shim) register(list *[]handlerReg, fn func(*Interaction)) func() {
	sh.mu.Lock()
	id := sh.nextHandler
	sh.nextHandler++
	*list = append(*list, handlerReg{id: id, fn: fn})
	sh.mu.Unlock()

	return func() {
		sh.mu.Lock()
		defer sh.mu.Unlock()
		kept := (*list)[:0]
		for _, reg := range *list {
			if reg.id != id {
				kept = append(kept, reg)
			}
		}
		*list = kept
	}
}

// handleEvent classifies one raw gateway event. Non-component interactions
// (slash commands and interaction kinds this shim does not model) are ignored
// or logged, never raised: exactly one typed emit happens per component
// interaction.
func (sh *Shim) handleEvent(e *discordgo.Event) {
	if e == nil || e.Type != interactionCreateEvent {
		return
	}

	var p interactionPayload
	if err := json.Unmarshal(e.RawData, &p); err != nil {
		log.Printf("buttons: undecodable %s payload: %v", interactionCreateEvent, err)
		return
	}
	if p.Message == nil {
		return
	}

	switch p.Data.ComponentType {
	case 0:
		// Not a component interaction.
	case int(KindButton):
		sh.dispatch(sh.snapshot(&sh.buttonHandlers), newInteraction(sh.sess, &p, false))
	case int(KindSelectMenu):
		sh.dispatch(sh.snapshot(&sh.menuHandlers), newInteraction(sh.sess, &p, true))
	default:
		fmt.Fprintf(sh.out, "buttons: ignoring interaction with unknown component type %d\n", p.Data.ComponentType)
	}
}

func (sh *Shim) snapshot(list *[]handlerReg) []handlerReg {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	regs := make([]handlerReg, len(*list))
	copy(regs, *list)
	return regs
}

func (sh *Shim) dispatch(regs []handlerReg, ic *Interaction) {
	for _, reg := range regs {
		reg.fn(ic)
	}
}

// SendMessage posts a message with components to a channel through the host
// session's REST transport.
func (sh *Shim) SendMessage(ctx context.Context, channelID string, opts *SendOptions) (*discordgo.Message, error) {
	body, err := buildMessageBody(opts)
	if err != nil {
		return nil, err
	}
	var msg *discordgo.Message
	err = retryOnRateLimit(ctx, func() error {
		resp, reqErr := sh.sess.Request(http.MethodPost, discordgo.EndpointChannelMessages(channelID), body)
		if reqErr != nil {
			return reqErr
		}
		return json.Unmarshal(resp, &msg)
	})
	if err != nil {
		return nil, fmt.Errorf("buttons: send message: %w", err)
	}
	return msg, nil
}

// EditMessage rewrites an existing message, including its components. Passing
// Clear in a shorthand field strips the components from the message.
func (sh *Shim) EditMessage(ctx context.Context, channelID, messageID string, opts *SendOptions) (*discordgo.Message, error) {
	body, err := buildMessageBody(opts)
	if err != nil {
		return nil, err
	}
	var msg *discordgo.Message
	err = retryOnRateLimit(ctx, func() error {
		resp, reqErr := sh.sess.Request(http.MethodPatch, discordgo.EndpointChannelMessage(channelID, messageID), body)
		if reqErr != nil {
			return reqErr
		}
		return json.Unmarshal(resp, &msg)
	})
	if err != nil {
		return nil, fmt.Errorf("buttons: edit message: %w", err)
	}
	return msg, nil
}
