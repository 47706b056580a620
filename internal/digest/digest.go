// Package digest posts a scheduled click-activity summary to a Discord
// channel, with a refresh button wired back into the click flow.
package digest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"

	buttons "github.com/russellmwolf/discord-buttons"
	"github.com/russellmwolf/discord-buttons/internal/clicklog"
)

// RefreshCustomID is the custom_id of the refresh button attached to every
// digest message. The bot re-posts the digest when it is clicked.
const RefreshCustomID = "digest-refresh"

// Report holds computed click metrics for one period.
type Report struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Total       int64
	UniqueUsers int64
	ByCustomID  []clicklog.CustomIDCount
}

// Sender abstracts the component-aware message surface for testability.
type Sender interface {
	SendMessage(ctx context.Context, channelID string, opts *buttons.SendOptions) (*discordgo.Message, error)
}

// Scheduler posts the digest on a cron schedule.
type Scheduler struct {
	store     *clicklog.Store
	sender    Sender
	sched     cron.Schedule
	channelID string
	period    time.Duration
	out       io.Writer
}

// SchedulerOpts holds parameters for creating a Scheduler.
type SchedulerOpts struct {
	Store     *clicklog.Store
	Sender    Sender
	Schedule  string // 5-field cron expression
	ChannelID string
	Period    time.Duration // reporting window, defaults to 24h
	Out       io.Writer
}

// NewScheduler creates a Scheduler.
func NewScheduler(opts SchedulerOpts) (*Scheduler, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("digest: store is required")
	}
	if opts.Sender == nil {
		return nil, fmt.Errorf("digest: sender is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("digest: channel id is required")
	}
	sched, err := parseSchedule(opts.Schedule)
	if err != nil {
		return nil, err
	}
	period := opts.Period
	if period <= 0 {
		period = 24 * time.Hour
	}
	return &Scheduler{
		store:     opts.Store,
		sender:    opts.Sender,
		sched:     sched,
		channelID: opts.ChannelID,
		period:    period,
		out:       opts.Out,
	}, nil
}

// Run blocks, posting a digest at every scheduled fire time until ctx is
// cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		wait := untilNext(s.sched)
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			if err := s.Post(ctx); err != nil && s.out != nil {
				fmt.Fprintf(s.out, "digest: post failed: %v\n", err)
			}
		}
	}
}

// Post builds the report for the current period and sends it. A period with
// no clicks is suppressed.
func (s *Scheduler) Post(ctx context.Context) error {
	report, err := BuildReport(s.store, s.period)
	if err != nil {
		return err
	}
	if report == nil {
		return nil
	}
	_, err = s.sender.SendMessage(ctx, s.channelID, Format(report))
	if err != nil {
		return fmt.Errorf("digest: send: %w", err)
	}
	return nil
}

// BuildReport queries the click log for the trailing period. Returns nil when
// there was no activity.
func BuildReport(store *clicklog.Store, period time.Duration) (*Report, error) {
	now := time.Now()
	since := now.Add(-period)

	total, err := store.TotalSince(since)
	if err != nil {
		return nil, fmt.Errorf("digest: report: %w", err)
	}
	if total == 0 {
		return nil, nil
	}
	users, err := store.UniqueUsersSince(since)
	if err != nil {
		return nil, fmt.Errorf("digest: report: %w", err)
	}
	counts, err := store.CountsSince(since)
	if err != nil {
		return nil, fmt.Errorf("digest: report: %w", err)
	}

	return &Report{
		PeriodStart: since,
		PeriodEnd:   now,
		Total:       total,
		UniqueUsers: users,
		ByCustomID:  counts,
	}, nil
}

// Format renders a report as a component-bearing message: the summary text
// plus a refresh button.
func Format(report *Report) *buttons.SendOptions {
	var lines []string
	lines = append(lines, fmt.Sprintf("**Click Digest** %s to %s",
		report.PeriodStart.Format("Jan 2 15:04"),
		report.PeriodEnd.Format("Jan 2 15:04")))
	lines = append(lines, fmt.Sprintf("**Clicks**: %d from %d users", report.Total, report.UniqueUsers))
	for _, c := range report.ByCustomID {
		lines = append(lines, fmt.Sprintf("  %s: %d", c.CustomID, c.Count))
	}

	refresh := buttons.NewButton().
		SetStyle("blurple").
		SetLabel("Refresh").
		SetEmoji("🔄").
		SetID(RefreshCustomID)

	return &buttons.SendOptions{
		Content: strings.Join(lines, "\n"),
		Button:  refresh,
	}
}
