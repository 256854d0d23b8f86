package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrisedwards/slack-archive/internal/archive"
	"github.com/chrisedwards/slack-archive/internal/config"
	"github.com/chrisedwards/slack-archive/internal/export"
	"github.com/chrisedwards/slack-archive/internal/mapping"
)

// Version information, injected at build time via ldflags.
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "slack-archive",
	Short: "Browse and query exported Slack archive folders",
	Long: `slack-archive is a CLI tool for browsing exported Slack archives.

It loads channel and DM conversations from folders of exported JSON
files, reconstructs message timelines including threads, and supports
keyword search, time-period filtering, per-user statistics, and
plain-text export. User and group-DM display names come from small
JSON mapping files that can be updated from the command line.`,
	Version: fmt.Sprintf("%s (build %s, %s)", Version, Build, BuildTime),
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file path (default ~/.config/slack-archive/config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// app bundles the loaded configuration, name mappings, and archive
// store behind a single open call for the subcommands.
type app struct {
	cfg     *config.Config
	loc     *time.Location
	store   *archive.Store
	users   *mapping.NameMapping
	dmNames *mapping.NameMapping
}

func openApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	loc, err := export.ResolveLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	users := mapping.New(cfg.UserMappingFile())
	if err := users.Load(); err != nil {
		return nil, err
	}
	dmNames := mapping.New(cfg.DMMappingFile())
	if err := dmNames.Load(); err != nil {
		return nil, err
	}

	store := archive.NewStore(archive.StoreConfig{
		ChannelRoot: cfg.ChannelRoot,
		DMRoot:      cfg.DMRoot,
		Users:       users,
		DMNames:     dmNames,
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		Logger:      newLogger(),
	})
	store.LoadChannels()
	store.LoadDMs()

	return &app{
		cfg:     cfg,
		loc:     loc,
		store:   store,
		users:   users,
		dmNames: dmNames,
	}, nil
}
