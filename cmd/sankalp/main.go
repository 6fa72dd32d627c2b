package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sankalp/internal/bootstrap"
	playerdto "sankalp/internal/modules/player/dto"
	reminderdto "sankalp/internal/modules/reminder/dto"
	sankalpdto "sankalp/internal/modules/sankalp/dto"
	"sankalp/internal/platform/config"
	"sankalp/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "sankalp",
		Short:         "Daily Hanuman Chalisa sankalp tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir(), "directory holding state, audio and config")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newStatusCmd(&dataDir))
	root.AddCommand(newMarkCmd(&dataDir))
	root.AddCommand(newUndoCmd(&dataDir))
	root.AddCommand(newOnboardCmd(&dataDir))
	root.AddCommand(newSettingsCmd(&dataDir))
	root.AddCommand(newBeadCmd(&dataDir))
	root.AddCommand(newPlayCmd(&dataDir))
	root.AddCommand(newReminderCmd(&dataDir))
	root.AddCommand(newDaemonCmd(&dataDir))
	return root
}

// loadApp builds the app with stderr logging; the TUI passes toFile so log
// lines go to the configured log file instead.
func loadApp(dataDir string, toFile bool) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	var logger zerolog.Logger
	var closer io.Closer
	if toFile {
		logger, closer, err = logging.NewFile(cfg.LogLevel, cfg.LogPath)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
	} else {
		logger = logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	}
	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	app.Own(closer)
	return app, nil
}

func withApp(dataDir string, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(dataDir, false)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the sankalp terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, true)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func printState(w io.Writer, s sankalpdto.StateOutput) {
	_, _ = fmt.Fprintf(w, "date=%s progress=%d/%d streak=%d total=%d goal_met=%t\n",
		s.LastDate, s.CompletedToday, s.DailyTarget, s.Streak, s.TotalCompletedAllTime, s.GoalMet)
}

func newStatusCmd(dataDir *string) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's progress (applies the daily rollover)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				var s sankalpdto.StateOutput
				var err error
				if raw {
					s, err = app.SankalpCLI.Raw(context.Background())
				} else {
					s, err = app.SankalpCLI.Status(context.Background())
				}
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), s)
				if s.Onboarded {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "user=%q email=%q\n", s.Name, s.Email)
				} else {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not onboarded: run `sankalp onboard --name <name>`")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "auto_loop=%t resume_prompt=%t\n", s.AutoLoopToTarget, s.AutoResumePrompt)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "show the stored record without rolling it over")
	return cmd
}

func newMarkCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "mark",
		Short: "Record one completed recitation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.SankalpCLI.Mark(context.Background())
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), out.State)
				if out.GoalReached {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Jai Hanuman 🙏 Today’s sankalp complete. Your streak grows stronger.")
				}
				return nil
			})
		},
	}
}

func newUndoCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Take back one recitation from today's tally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				s, err := app.SankalpCLI.Undo(context.Background())
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), s)
				return nil
			})
		},
	}
}

func newOnboardCmd(dataDir *string) *cobra.Command {
	var name, email string
	var target int
	cmd := &cobra.Command{
		Use:   "onboard --name <name> [--target 7]",
		Short: "Set the daily goal and profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				s, err := app.SankalpCLI.Onboard(context.Background(), target, name, email)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sankalp set for %s: %d per day\n", s.Name, s.DailyTarget)
				printState(cmd.OutOrStdout(), s)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "your name")
	cmd.Flags().StringVar(&email, "email", "", "email (optional)")
	cmd.Flags().IntVar(&target, "target", 7, "daily target: 7|11|21|108 or any positive number")
	return cmd
}

func newSettingsCmd(dataDir *string) *cobra.Command {
	var autoLoop, resumePrompt string
	cmd := &cobra.Command{
		Use:   "settings [--auto-loop on|off] [--resume-prompt on|off]",
		Short: "Show or change playback settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			loop, err := parseToggle("--auto-loop", autoLoop)
			if err != nil {
				return err
			}
			resume, err := parseToggle("--resume-prompt", resumePrompt)
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				s, err := app.SankalpCLI.Settings(context.Background(), loop, resume)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "auto_loop=%t resume_prompt=%t\n", s.AutoLoopToTarget, s.AutoResumePrompt)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&autoLoop, "auto-loop", "", "replay until the daily target is met: on|off")
	cmd.Flags().StringVar(&resumePrompt, "resume-prompt", "", "offer to continue when reopening mid-goal: on|off")
	return cmd
}

func parseToggle(flag, v string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return nil, nil
	case "on", "true", "yes":
		b := true
		return &b, nil
	case "off", "false", "no":
		b := false
		return &b, nil
	default:
		return nil, fmt.Errorf("%s must be on or off", flag)
	}
}

func newBeadCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "bead <position-ms> <duration-ms>",
		Short: "Print the mala bead for a playback position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("position: %w", err)
			}
			dur, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("duration: %w", err)
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.PlayerCLI.Bead(pos, dur))
				return nil
			})
		},
	}
}

func newPlayCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the recitation and count completions until the goal or ctrl+c",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withApp(*dataDir, func(app *bootstrap.App) error {
				w := cmd.OutOrStdout()
				last := -1
				return app.PlayerCLI.Play(ctx, func(u playerdto.Update) {
					if c := u.Completion; c != nil {
						_, _ = fmt.Fprintf(w, "\ncompleted %d/%d streak=%d\n", c.CompletedToday, c.DailyTarget, c.Streak)
						if c.GoalReached {
							_, _ = fmt.Fprintln(w, "Jai Hanuman 🙏 Today’s sankalp complete. Your streak grows stronger.")
						}
						last = -1
						return
					}
					if u.HasPointer && u.BeadIndex != last {
						last = u.BeadIndex
						_, _ = fmt.Fprintf(w, "\r%s bead %3d/108", u.Phase, u.BeadIndex+1)
					}
				})
			})
		},
	}
}

func printReminders(w io.Writer, out reminderdto.ListOutput) {
	if len(out.Reminders) == 0 {
		_, _ = fmt.Fprintln(w, "no reminders")
		return
	}
	for _, r := range out.Reminders {
		_, _ = fmt.Fprintf(w, "%d\t%s\n", r.Index+1, r.Time)
	}
}

func newReminderCmd(dataDir *string) *cobra.Command {
	reminder := &cobra.Command{Use: "reminder", Short: "Daily motivational reminders"}

	reminder.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List reminder times",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ReminderCLI.List(context.Background())
				if err != nil {
					return err
				}
				printReminders(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	reminder.AddCommand(&cobra.Command{
		Use:   "add <HH:MM>",
		Short: "Add a daily reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ReminderCLI.Add(context.Background(), args[0])
				if err != nil {
					return err
				}
				printReminders(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	reminder.AddCommand(&cobra.Command{
		Use:   "remove <position>",
		Short: "Remove a reminder by its listed position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("position must be a number: %w", err)
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ReminderCLI.Remove(context.Background(), pos)
				if err != nil {
					return err
				}
				printReminders(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	reminder.AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: "Replace the list with the default seven reminders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ReminderCLI.Defaults(context.Background())
				if err != nil {
					return err
				}
				printReminders(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	reminder.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every reminder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.ReminderCLI.Clear(context.Background())
				if err != nil {
					return err
				}
				printReminders(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})
	return reminder
}

func newDaemonCmd(dataDir *string) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the reminder scheduler in the foreground",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withApp(*dataDir, func(app *bootstrap.App) error {
				addr := metricsAddr
				if addr == "" {
					addr = app.Config.MetricsAddr
				}
				return bootstrap.RunDaemon(ctx, app, addr)
			})
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9108")
	return cmd
}
