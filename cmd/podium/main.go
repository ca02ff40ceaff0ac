package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/podium/internal/app"
)

// Version is set at build time.
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "podium: %v\n", err)
		return 1
	}
	return 0
}

type globalFlags struct {
	configPath string
	prefsPath  string
	seed       uint64
	verbose    bool
}

func (g *globalFlags) options(cmd *cobra.Command) app.Options {
	opts := app.Options{
		ConfigPath: g.configPath,
		PrefsPath:  g.prefsPath,
		Verbose:    g.verbose,
	}
	if cmd.Flags().Changed("seed") {
		seed := g.seed
		opts.Seed = &seed
	}
	return opts
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "podium",
		Short: "Draw debate topics from prepared slots",
		Long: `podium keeps debate topics organized by day and slot and draws them
one at a time without repeats until the slot is reset.

Run without a subcommand to open the terminal interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), flags.options(cmd))
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file path (default ~/.config/podium/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file path (default ~/.config/podium/prefs.toml)")
	pf.Uint64Var(&flags.seed, "seed", 0, "seed for deterministic draws")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(
		drawCmd(&flags),
		exportCmd(&flags),
		importCmd(&flags),
		versionCmd(),
	)
	return cmd
}

func drawCmd(flags *globalFlags) *cobra.Command {
	var day int
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw one topic from the day's active slot and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := app.Open(cmd.Context(), flags.options(cmd))
			if err != nil {
				return err
			}
			defer closeSession(s, &err)

			got, err := s.Draw(day)
			if err != nil {
				return err
			}
			printDrawn(cmd.OutOrStdout(), got)
			return nil
		},
	}
	cmd.Flags().IntVar(&day, "day", 1, "day id")
	return cmd
}

func exportCmd(flags *globalFlags) *cobra.Command {
	var (
		day    int
		slot   int
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a slot's topics as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := app.Open(cmd.Context(), flags.options(cmd))
			if err != nil {
				return err
			}
			defer closeSession(s, &err)

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, ferr := os.Create(output)
				if ferr != nil {
					return fmt.Errorf("create %s: %w", output, ferr)
				}
				defer func() {
					if cerr := f.Close(); cerr != nil && err == nil {
						err = cerr
					}
				}()
				w = f
			}
			return s.Export(w, day, slot)
		},
	}
	cmd.Flags().IntVar(&day, "day", 1, "day id")
	cmd.Flags().IntVar(&slot, "slot", -1, "slot index (default active slot)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func importCmd(flags *globalFlags) *cobra.Command {
	var day int
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add topics from a YAML file to the day's active slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, ferr := os.Open(args[0])
				if ferr != nil {
					return fmt.Errorf("open %s: %w", args[0], ferr)
				}
				defer f.Close()
				r = f
			}

			s, err := app.Open(cmd.Context(), flags.options(cmd))
			if err != nil {
				return err
			}
			defer closeSession(s, &err)

			n, err := s.Import(r, day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d topics into %s\n", n, s.Config.DayLabel(day))
			return nil
		},
	}
	cmd.Flags().IntVar(&day, "day", 1, "day id")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "podium version %s\n", Version)
		},
	}
}

func closeSession(s *app.Session, err *error) {
	if cerr := s.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

func printDrawn(w io.Writer, d app.Drawn) {
	fmt.Fprintf(w, "%s · %s\n\n", d.Day, d.Slot)
	fmt.Fprintf(w, "%s\n", orNoContent(d.Topic.Title))
	fmt.Fprintf(w, "  Side A (pro): %s\n", orNoContent(d.Topic.SideA))
	fmt.Fprintf(w, "  Side B (con): %s\n", orNoContent(d.Topic.SideB))
}

func orNoContent(s string) string {
	if strings.TrimSpace(s) == "" {
		return "no content"
	}
	return s
}
