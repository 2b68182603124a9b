package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kerbaras/guya/pkg/app"
	"github.com/kerbaras/guya/pkg/config"
	"github.com/kerbaras/guya/pkg/logger"
	"github.com/kerbaras/guya/pkg/services"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "guya",
	Short: "A terminal reader for the guya.moe catalogue",
	Long:  "Browse, read and export the guya.moe catalogue from a TUI, the command line or a local HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		// the TUI owns the terminal, so the log goes to a file
		c := mustController(func(cfg *config.Config) []string {
			cobra.CheckErr(os.MkdirAll(cfg.Home, 0755))
			return []string{filepath.Join(cfg.Home, "guya.log")}
		})
		defer closeController(c)

		if err := app.NewApp(c).Run(cmd.Context()); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// mustController loads the configuration and wires the services, exiting
// on failure. logOutputs, when given, picks the log sinks.
func mustController(logOutputs ...func(*config.Config) []string) *services.Controller {
	cfg, err := config.Load()
	cobra.CheckErr(err)
	if debug {
		cfg.Debug = true
	}

	var outputs []string
	for _, f := range logOutputs {
		outputs = append(outputs, f(cfg)...)
	}
	log, err := logger.New(cfg.Debug, outputs...)
	cobra.CheckErr(err)

	c, err := services.NewController(cfg, log)
	cobra.CheckErr(err)
	return c
}

func closeController(c *services.Controller) {
	if err := c.Close(); err != nil {
		c.Log.Warnw("failed to close controller", "error", err)
	}
	_ = c.Log.Sync()
}

func parseChapter(s string) (float64, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chapter number %q", s)
	}
	return n, nil
}

func parsePage(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid page number %q", s)
	}
	return n, nil
}
