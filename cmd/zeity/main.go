package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeity-dev/zeity/internal/app"
	"github.com/zeity-dev/zeity/internal/config"
	"github.com/zeity-dev/zeity/internal/domain/project"
	"github.com/zeity-dev/zeity/internal/domain/times"
	"github.com/zeity-dev/zeity/internal/mcp"
	"github.com/zeity-dev/zeity/internal/settings"
	"github.com/zeity-dev/zeity/internal/transport"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zeity",
	Short: "Offline-first time tracker",
	Long:  `zeity tracks time entries and projects locally and syncs them with your remote account when one is configured.`,
}

func init() {
	projectCmd.AddCommand(projectListCmd, projectAddCmd, projectCloseCmd, projectRemoveCmd)
	rootCmd.AddCommand(
		startCmd, stopCmd, toggleCmd, statusCmd, resetCmd,
		listCmd, addCmd, removeCmd,
		projectCmd, syncCmd, settingsCmd, mcpCmd,
	)

	startCmd.Flags().StringVar(&flagNotes, "notes", "", "notes for the entry")
	startCmd.Flags().StringVar(&flagProject, "project", "", "project id to book the time on")
	listCmd.Flags().BoolVar(&flagBreaks, "breaks", false, "interleave inferred breaks")
	addCmd.Flags().StringVar(&flagStart, "start", "", "start instant (RFC 3339)")
	addCmd.Flags().DurationVar(&flagFor, "for", 0, "entry length, e.g. 1h30m")
	addCmd.Flags().StringVar(&flagNotes, "notes", "", "notes for the entry")
	addCmd.Flags().StringVar(&flagProject, "project", "", "project id to book the time on")
	projectAddCmd.Flags().StringVar(&flagNotes, "notes", "", "project notes")
	settingsCmd.Flags().BoolVar(&flagRoundTimes, "round-times", false, "round entries on create and update")
	settingsCmd.Flags().BoolVar(&flagCalcBreaks, "calculate-breaks", false, "infer breaks between entries")
}

var (
	flagNotes      string
	flagProject    string
	flagBreaks     bool
	flagStart      string
	flagFor        time.Duration
	flagRoundTimes bool
	flagCalcBreaks bool
)

// withApp builds the engine, runs fn, and flushes persistence.
func withApp(fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the draft timer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			patch := times.DraftPatch{}
			if flagNotes != "" {
				patch.Notes = &flagNotes
			}
			if flagProject != "" {
				patch.ProjectID = &flagProject
			}
			draft := a.Timer.Start(patch)
			fmt.Printf("Timer running since %s\n", draft.Start.Format(time.RFC3339))
			return nil
		})
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the draft timer and record the entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			entry := a.Timer.Stop(ctx)
			if entry == nil {
				fmt.Println("No timer running")
				return nil
			}
			printTime(*entry)
			return nil
		})
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Start the timer when idle, stop it when running",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			draft, entry := a.Timer.Toggle(ctx)
			if draft != nil {
				fmt.Printf("Timer running since %s\n", draft.Start.Format(time.RFC3339))
				return nil
			}
			printTime(*entry)
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the draft timer state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			draft, ok := a.Timer.Draft()
			if !ok {
				fmt.Println("Idle")
				return nil
			}
			elapsed := time.Duration(times.Diff(times.Now(), draft.Start)) * time.Millisecond
			fmt.Printf("Running for %s (since %s)\n", elapsed, draft.Start.Format(time.RFC3339))
			if draft.Notes != "" {
				fmt.Printf("Notes: %s\n", draft.Notes)
			}
			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the running draft without recording it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			a.Timer.Reset()
			fmt.Println("Draft discarded")
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List locally known time entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			entries := a.Times.Store().GetAll()
			if flagBreaks || a.Settings.Get().CalculateBreaks {
				entries = times.InferBreaks(entries)
			}
			for _, entry := range entries {
				printTime(entry)
			}
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a finished entry directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			start := times.Now().Add(-flagFor)
			if flagStart != "" {
				parsed, err := time.Parse(time.RFC3339, flagStart)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
				start = parsed
			}
			entry := a.Times.Create(ctx, times.Time{
				Type:      times.TypeManual,
				Start:     start,
				Duration:  flagFor.Milliseconds(),
				Notes:     flagNotes,
				ProjectID: flagProject,
			})
			printTime(entry)
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a time entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			a.Times.Remove(ctx, args[0])
			return nil
		})
	},
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List locally known projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			for _, proj := range a.Projects.Store().GetAll() {
				marker := " "
				if !proj.IsOnline() {
					marker = "*"
				}
				fmt.Printf("%s %s  %-8s %s\n", marker, proj.ID, proj.Status, proj.Name)
			}
			return nil
		})
	},
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			proj := a.Projects.Create(ctx, project.Project{
				Name:   args[0],
				Status: project.StatusActive,
				Notes:  flagNotes,
			})
			fmt.Printf("Created project %s (%s)\n", proj.Name, proj.ID)
			return nil
		})
	},
}

var projectCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Close a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			status := project.StatusClosed
			if _, ok := a.Projects.Update(ctx, args[0], project.Patch{Status: &status}); !ok {
				return fmt.Errorf("unknown project %q", args[0])
			}
			return nil
		})
	},
}

var projectRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			a.Projects.Remove(ctx, args[0])
			return nil
		})
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch remote entries and projects into the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			entries, err := a.Times.Load(ctx, transport.TimeListOptions{})
			if err != nil {
				return fmt.Errorf("loading times: %w", err)
			}
			projects, err := a.Projects.Load(ctx, transport.ProjectListOptions{})
			if err != nil {
				return fmt.Errorf("loading projects: %w", err)
			}
			fmt.Printf("Synced %d times, %d projects\n", len(entries), len(projects))
			return nil
		})
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change tracking settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			current := a.Settings.Get()
			if cmd.Flags().Changed("round-times") || cmd.Flags().Changed("calculate-breaks") {
				current = a.Settings.Set(ctx, func(s *settings.Settings) {
					if cmd.Flags().Changed("round-times") {
						s.RoundTimes = flagRoundTimes
					}
					if cmd.Flags().Changed("calculate-breaks") {
						s.CalculateBreaks = flagCalcBreaks
					}
				})
			}
			fmt.Printf("round-times:      %v\n", current.RoundTimes)
			fmt.Printf("calculate-breaks: %v\n", current.CalculateBreaks)
			return nil
		})
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the engine as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app.App) error {
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-stop
				cancel()
			}()

			server := mcp.NewServer(mcp.Config{
				Times:    a.Times,
				Projects: a.Projects,
				Timer:    a.Timer,
				Settings: a.Settings,
				Logger:   a.Logger,
			})
			return mcp.Run(ctx, server)
		})
	},
}

func printTime(entry times.Time) {
	marker := " "
	if !entry.IsOnline() {
		marker = "*"
	}
	length := time.Duration(entry.Duration) * time.Millisecond
	fmt.Printf("%s %s  %s  %-6s %-10s %s\n",
		marker, entry.ID, entry.Start.Format(time.RFC3339), length, entry.Type, entry.Notes)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
