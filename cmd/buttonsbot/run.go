package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	buttons "github.com/russellmwolf/discord-buttons"
	"github.com/russellmwolf/discord-buttons/internal/clicklog"
	"github.com/russellmwolf/discord-buttons/internal/config"
	"github.com/russellmwolf/discord-buttons/internal/dashboard"
	"github.com/russellmwolf/discord-buttons/internal/digest"
)

func newRunCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the demo bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return runBot(cmd, cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")
	return cmd
}

func runBot(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()

	token, err := resolveToken(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("buttonsbot: create session: %w", err)
	}

	shim, err := buttons.Attach(s)
	if err != nil {
		return err
	}
	defer shim.Detach()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shim.OnButtonClick(func(ic *buttons.Interaction) {
		handleButton(ctx, shim, store, cfg, ic)
	})
	shim.OnMenuSelect(func(ic *buttons.Interaction) {
		handleMenu(ctx, store, ic)
	})

	if err := s.Open(); err != nil {
		return fmt.Errorf("buttonsbot: open gateway: %w", err)
	}
	defer s.Close()

	if _, err := shim.SendMessage(ctx, cfg.Discord.ChannelID, demoSendOptions()); err != nil {
		return err
	}
	fmt.Fprintf(out, "buttonsbot running, demo posted to channel %s\n", cfg.Discord.ChannelID)

	if cfg.Dashboard.Enabled {
		go func() {
			if err := dashboard.Start(ctx, dashboard.StartOpts{
				Store: store,
				Port:  cfg.Dashboard.Port,
				Out:   out,
			}); err != nil {
				fmt.Fprintf(out, "buttonsbot: dashboard: %v\n", err)
			}
		}()
	}

	if cfg.Digest.Enabled {
		scheduler, err := digest.NewScheduler(digest.SchedulerOpts{
			Store:     store,
			Sender:    shim,
			Schedule:  cfg.Digest.Schedule,
			ChannelID: cfg.Digest.ChannelID,
			Out:       out,
		})
		if err != nil {
			return err
		}
		go scheduler.Run(ctx)
	}

	<-ctx.Done()
	fmt.Fprintln(out, "buttonsbot shutting down")
	return nil
}

// resolveToken returns the configured bot token, prompting on the terminal
// when the config omits it.
func resolveToken(cfg *config.Config) (string, error) {
	if cfg.Discord.Token != "" {
		return cfg.Discord.Token, nil
	}
	fmt.Print("Enter bot token: ")
	tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("buttonsbot: read token: %w", err)
	}
	token := strings.TrimSpace(string(tokenBytes))
	if token == "" {
		return "", fmt.Errorf("buttonsbot: token cannot be empty")
	}
	return token, nil
}

func openStore(cfg *config.Config) (*clicklog.Store, error) {
	if cfg.Database.Driver == "mysql" {
		return clicklog.OpenMySQL(cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	}
	return clicklog.OpenSQLite(cfg.Database.Path)
}

// handleButton records the click and replies. The digest refresh button
// re-posts the digest instead of a plain acknowledgement.
func handleButton(ctx context.Context, shim *buttons.Shim, store *clicklog.Store, cfg *config.Config, ic *buttons.Interaction) {
	_ = store.Record(clickFromInteraction(ic))

	if ic.CustomID == digest.RefreshCustomID {
		if err := ic.Reply.Defer(ctx, false); err != nil {
			return
		}
		report, err := digest.BuildReport(store, 24*time.Hour)
		if err != nil || report == nil {
			return
		}
		shim.SendMessage(ctx, cfg.Digest.ChannelID, digest.Format(report))
		return
	}

	if err := ic.Reply.Think(ctx, false); err != nil {
		return
	}
	ic.Reply.Edit(ctx, &buttons.SendOptions{
		Content: fmt.Sprintf("Thanks for clicking **%s**!", ic.CustomID),
	})
}

// handleMenu records the selection and echoes it back to the clicker only.
func handleMenu(ctx context.Context, store *clicklog.Store, ic *buttons.Interaction) {
	_ = store.Record(clickFromInteraction(ic))

	ic.Reply.Send(ctx, &buttons.SendOptions{
		Content:   fmt.Sprintf("You picked: %s", strings.Join(ic.Values, ", ")),
		Ephemeral: true,
	})
}

// clickFromInteraction converts an interaction envelope to a click-log row.
func clickFromInteraction(ic *buttons.Interaction) *clicklog.Click {
	kind := clicklog.KindButton
	if ic.IsMenu() {
		kind = clicklog.KindMenu
	}
	return &clicklog.Click{
		CustomID:  ic.CustomID,
		Kind:      kind,
		UserID:    ic.Clicker.ID,
		GuildID:   ic.GuildID,
		ChannelID: ic.ChannelID,
		Values:    strings.Join(ic.Values, ","),
	}
}

// demoSendOptions builds the startup demo message: one select menu row and
// one button row.
func demoSendOptions() *buttons.SendOptions {
	menu := buttons.NewMenu().
		SetID("hey").
		SetPlaceholder("Pick an action").
		AddOptions(
			buttons.NewMenuOption().SetLabel("Reload").SetValue("reload").SetDescription("Reload the view"),
			buttons.NewMenuOption().SetLabel("Status").SetValue("status").SetDescription("Show current status"),
		)
	row := buttons.NewActionRow().AddComponents(
		buttons.NewButton().SetStyle("blurple").SetLabel("Click me").SetID("go"),
		buttons.NewButton().SetStyle("url").SetLabel("Docs").SetURL("https://github.com/russellmwolf/discord-buttons"),
	)
	return &buttons.SendOptions{
		Content:    "Component demo: try the menu or the buttons below.",
		Components: []any{menu, row},
	}
}
