// Command activity logs in to a FlowBoard API and prints the activity view:
// completion counts, overdue tasks by weekday and the pending feed. Feed
// items can be dismissed by typing commands on stdin.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"flowboard/internal/client"
	"flowboard/internal/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.LoadClient()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	flag.StringVar(&cfg.APIURL, "api", cfg.APIURL, "API base URL")
	flag.StringVar(&cfg.Email, "email", cfg.Email, "Account email")
	flag.StringVar(&cfg.Password, "password", cfg.Password, "Account password")
	flag.DurationVar(&cfg.Interval, "interval", cfg.Interval, "Refresh interval")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.New(cfg.APIURL)
	session, err := c.Login(ctx, cfg.Email, cfg.Password)
	if err != nil {
		logger.Error("login failed", "error", err)
		os.Exit(1)
	}
	logger.Info("logged in", "username", session.User.Username)

	var suppressed client.Suppressions
	poller := client.NewPoller(c, cfg.Interval,
		client.WithLogger(logger),
		client.OnUpdate(func(s client.Snapshot) {
			render(os.Stdout, s, &suppressed)
		}),
	)

	go func() {
		readCommands(ctx, os.Stdin, os.Stdout, &suppressed, func() {
			if err := poller.Refresh(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("refresh failed", "error", err)
			}
		})
	}()
	poller.Run(ctx)
}

func render(w io.Writer, s client.Snapshot, suppressed *client.Suppressions) {
	now := time.Now()
	in := client.ComputeInsights(s.Tasks, now)

	fmt.Fprintf(w, "\n== %s ==\n", s.FetchedAt.Format(time.Kitchen))
	fmt.Fprintf(w, "completed %d (%d%%)  pending %d (%d%%)\n",
		in.Completed, in.CompletedSharePercent, in.Pending, in.PendingSharePercent)

	fmt.Fprintln(w, "overdue, last 7 days:")
	for _, b := range in.Week {
		fmt.Fprintf(w, "  %s %-20s %d\n", b.Label, strings.Repeat("#", b.Percent/5), b.Count)
	}

	feed := client.BuildFeed(s.Tasks, now, suppressed)
	fmt.Fprintf(w, "feed (%d):\n", client.PendingCount(s.Tasks, suppressed))
	for _, item := range feed {
		marker := " "
		if item.Overdue {
			marker = "!"
		}
		fmt.Fprintf(w, " %s %s  %s  [%s]\n", marker, item.When.Local().Format("Jan 2 15:04"), item.Message, item.TaskID)
	}
}
