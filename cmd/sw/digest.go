package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sitewatch/sitewatch/internal/digest"
	"github.com/sitewatch/sitewatch/internal/progress"
	"github.com/sitewatch/sitewatch/internal/report"
	"github.com/spf13/cobra"
)

func newDigestCmd() *cobra.Command {
	var (
		configPath string
		once       bool
		preview    bool
	)

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Post the project progress digest to Slack",
		Long: `Posts a progress summary to the configured Slack channel on the
digest schedule. Use --once to post immediately and exit, or --preview
to print the digest without posting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, configPath, once, preview)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&once, "once", false, "post one digest now and exit")
	cmd.Flags().BoolVar(&preview, "preview", false, "print the digest instead of posting it")
	cmd.AddCommand(newDigestHistoryCmd())
	return cmd
}

func runDigest(cmd *cobra.Command, configPath string, once, preview bool) error {
	out := cmd.OutOrStdout()
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	engine := progress.NewEngine(settingsStore(configPath, cfg))

	if preview {
		snaps, err := report.LoadSnapshots(gormDB, progress.Project())
		if err != nil {
			return err
		}
		d := digest.Build(cfg.Project, engine.Scope(snaps, progress.Project()), engine.Apartments(snaps))
		fmt.Fprintln(out, d.Text())
		return nil
	}

	if !cfg.SlackEnabled() {
		return errors.New("slack is not configured (set slack.bot_token and slack.channel_id)")
	}

	s := &digest.Scheduler{
		DB:       gormDB,
		Engine:   engine,
		Poster:   digest.NewSlackPoster(cfg.Slack.BotToken, cfg.Slack.ChannelID),
		Project:  cfg.Project,
		Schedule: cfg.Digest.Schedule,
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	if once {
		d, err := s.RunOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Posted digest to %s (%d%%).\n", cfg.Slack.ChannelID, d.OverallProgress)
		return nil
	}

	next, err := digest.NextRun(cfg.Digest.Schedule, time.Now())
	if err != nil {
		return err
	}
	log.Printf("digest: next run at %s", next.Format("2006-01-02 15:04 MST"))
	return s.Run(ctx)
}

func newDigestHistoryCmd() *cobra.Command {
	var (
		configPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent digest posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			runs, err := digest.LastRuns(gormDB, limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No digests posted yet.")
				return nil
			}
			for _, r := range runs {
				status := okText("ok")
				if r.Error != "" {
					status = errText(truncate(r.Error, 50))
				}
				fmt.Fprintf(out, "%s  %-12s %3d%%  %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Channel, r.OverallProgress, status)
			}
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show")
	return cmd
}
