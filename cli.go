package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/AlainJulien/portfolio/internal/theme"
)

// localVisitor owns the preference used by the CLI commands.
const localVisitor = "local"

func newRootCmd() *cobra.Command {
	serveCmd := newServeCmd()
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Personal portfolio site with a persisted light/dark theme",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          serveCmd.RunE,
	}
	root.AddCommand(serveCmd, newRenderCmd(), newThemeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func newRenderCmd() *cobra.Command {
	var (
		outPath  string
		override string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the portfolio page as static HTML",
		Long: `Render writes the page with the locally stored theme preference applied.
A "system" preference follows the terminal's background color.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := localState(override)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return renderPage(w, state)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&override, "theme", "", "render with light, dark or system without storing it")
	return cmd
}

// localState resolves the CLI user's theme. An override is applied for this
// run only.
func localState(override string) (themeState, error) {
	cfg, err := loadConfig()
	if err != nil {
		return themeState{}, err
	}
	ctrl, closeFn := localController(cfg)
	defer closeFn()

	state := stateOf(ctrl)
	if override != "" {
		p, err := theme.ParsePreference(override)
		if err != nil {
			return themeState{}, err
		}
		osDark, _ := theme.DetectTerminal(os.Stdout).PrefersDark()
		state = themeState{Theme: p, IsDark: theme.Resolve(p, osDark)}
	}
	return state, nil
}

func localController(cfg Config) (*theme.Controller, func()) {
	var st theme.Store = theme.NewMemoryStore()
	db := openStore(cfg.DatabasePath)
	if db != nil {
		st = db.ForVisitor(localVisitor)
	}
	ctrl := theme.NewController(st, theme.DetectTerminal(os.Stdout))
	ctrl.Initialize()
	return ctrl, func() {
		ctrl.Close()
		if db != nil {
			db.Close()
		}
	}
}

func renderPage(w io.Writer, state themeState) error {
	tmpl, err := loadTemplates()
	if err != nil {
		return err
	}
	return tmpl.ExecuteTemplate(w, "index.html", pageData(state))
}

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the locally stored theme preference",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the stored preference and the resolved appearance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctrl, closeFn := localController(cfg)
			defer closeFn()
			fmt.Fprintln(cmd.OutOrStdout(), formatState(stateOf(ctrl)))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "set <light|dark|system>",
		Short:     "Store a new preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"light", "dark", "system"},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := theme.ParsePreference(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctrl, closeFn := localController(cfg)
			defer closeFn()
			if err := ctrl.SetPreference(p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatState(stateOf(ctrl)))
			return nil
		},
	})
	return cmd
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	darkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E2E8F0")).Background(lipgloss.Color("#0B1117")).Padding(0, 1)
	lightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0F172A")).Background(lipgloss.Color("#F8FAFC")).Padding(0, 1)
)

func formatState(state themeState) string {
	appearance := lightStyle.Render("light")
	if state.IsDark {
		appearance = darkStyle.Render("dark")
	}
	return fmt.Sprintf("%s %s  %s %s",
		labelStyle.Render("preference:"), state.Theme,
		labelStyle.Render("appearance:"), appearance)
}
