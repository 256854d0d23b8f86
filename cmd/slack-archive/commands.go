package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrisedwards/slack-archive/internal/archive"
	"github.com/chrisedwards/slack-archive/internal/config"
	"github.com/chrisedwards/slack-archive/internal/export"
)

var (
	channelsVerbose bool

	catExport bool

	searchYear    int
	searchMonth   string
	searchQuarter string
	searchFrom    string
	searchTo      string
)

func init() {
	channelsCmd.Flags().BoolVarP(&channelsVerbose, "verbose", "v", false, "show message counts")

	catCmd.Flags().BoolVar(&catExport, "export", false, "write a text file instead of printing")

	searchCmd.Flags().IntVar(&searchYear, "year", 0, "restrict to a year")
	searchCmd.Flags().StringVar(&searchMonth, "month", "", "restrict to a month (YYYY-MM)")
	searchCmd.Flags().StringVar(&searchQuarter, "quarter", "", "restrict to a quarter (YYYYQN)")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "range start date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "range end date (YYYY-MM-DD)")

	rootCmd.AddCommand(channelsCmd, dmsCmd, catCmd, searchCmd, threadCmd,
		statsCmd, mapCmd, mapDMCmd, configCmd)
}

// parseKind maps the CLI's conversation selector to a lookup kind.
func parseKind(arg string) (archive.Kind, error) {
	switch arg {
	case "channel":
		return archive.KindChannel, nil
	case "dm":
		return archive.KindDM, nil
	}
	return "", fmt.Errorf("unknown conversation kind %q (want channel or dm)", arg)
}

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List channel names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		for _, name := range a.store.ChannelNames() {
			if channelsVerbose {
				conv, _ := a.store.Conversation(archive.KindChannel, name)
				fmt.Printf("%s\t%d messages\n", name, len(conv.Messages))
			} else {
				fmt.Println(name)
			}
		}
		return nil
	},
}

var dmsCmd = &cobra.Command{
	Use:   "dms",
	Short: "List DM conversations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, key := range a.store.DMNames() {
			fmt.Fprintf(w, "%s\t%s\n", key, a.store.DMDisplayName(key))
		}
		return w.Flush()
	},
}

var catCmd = &cobra.Command{
	Use:   "cat <channel|dm> <key>",
	Short: "Print a conversation",
	Long: `Print a conversation as plain text, one line per message with thread
replies bracketed beneath their parent. With --export the text is
written to the configured export directory instead.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		a, err := openApp()
		if err != nil {
			return err
		}
		conv, ok := a.store.Conversation(kind, args[1])
		if !ok {
			return fmt.Errorf("no %s conversation %q", args[0], args[1])
		}
		if catExport {
			path, err := export.WriteConversation(a.cfg.ExportDir,
				fmt.Sprintf("%s_%s", args[0], args[1]), conv, a.users, a.loc)
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		}
		fmt.Print(export.RenderConversation(conv, a.users, a.loc))
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <channel|dm> <key> <keyword>",
	Short: "Search a conversation",
	Long: `Search a conversation's top-level messages for a keyword,
case-insensitively, optionally narrowed to a year, month, quarter, or
custom date range.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		a, err := openApp()
		if err != nil {
			return err
		}
		period, err := buildPeriod(searchYear, searchMonth, searchQuarter, searchFrom, searchTo, a.loc)
		if err != nil {
			return err
		}
		hits, err := a.store.Search(kind, args[1], args[2])
		if err != nil {
			return err
		}
		for _, m := range archive.FilterByPeriod(hits, period, a.loc) {
			printMessage(a, m)
		}
		return nil
	},
}

var threadCmd = &cobra.Command{
	Use:   "thread <channel|dm> <root-ts>",
	Short: "Show a thread by its root timestamp",
	Long: `Collect a thread across all conversations of the given kind: the root
message plus every reply referencing it, whether nested or stored as a
flat sibling, sorted by timestamp.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		rootTS, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid thread timestamp %q: %w", args[1], err)
		}
		a, err := openApp()
		if err != nil {
			return err
		}
		for _, m := range archive.FindThreadMessages(rootTS, a.store.Scope(kind)) {
			printMessage(a, m)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [user-id]",
	Short: "Show per-user message statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		stats := a.store.CollectStats()

		if len(args) == 1 {
			id := args[0]
			st := a.store.UserStats(id)
			fmt.Printf("%s (%s)\n", id, a.store.Name(id))
			fmt.Printf("  messages: %d\n", st.TotalMessages)
			fmt.Printf("  channels: %s\n", strings.Join(st.Channels, ", "))
			fmt.Printf("  dms:      %s\n", strings.Join(st.DMs, ", "))
			return nil
		}

		ids := make([]string, 0, len(stats))
		for id := range stats {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMESSAGES\tCHANNELS\tDMS")
		for _, id := range ids {
			st := stats[id]
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
				id, a.store.Name(id), st.TotalMessages, len(st.Channels), len(st.DMs))
		}
		return w.Flush()
	},
}

var mapCmd = &cobra.Command{
	Use:   "map <user-id> <name>",
	Short: "Map a user id to a display name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		if err := a.store.UpdateName(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", args[0], args[1])
		return nil
	},
}

var mapDMCmd = &cobra.Command{
	Use:   "map-dm <dm-id> <name>",
	Short: "Map a group DM id to a display name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		if err := a.store.UpdateDMName(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", args[0], args[1])
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		fmt.Printf("channel_root: %s\n", cfg.ChannelRoot)
		fmt.Printf("dm_root:      %s\n", cfg.DMRoot)
		fmt.Printf("mapping_dir:  %s\n", cfg.MappingDir)
		fmt.Printf("export_dir:   %s\n", cfg.ExportDir)
		fmt.Printf("timezone:     %s\n", cfg.Timezone)
		fmt.Printf("include:      %s\n", formatPatterns(cfg.Include))
		fmt.Printf("exclude:      %s\n", formatPatterns(cfg.Exclude))
		return nil
	},
}

func printMessage(a *app, m *archive.Message) {
	fmt.Printf("[%s] %s: %s\n",
		m.Time(a.loc).Format("2006-01-02 15:04:05"), a.store.Name(m.UserID), m.Text)
}

// formatPatterns renders a pattern list as "[a, b]" or "(none)".
func formatPatterns(patterns []string) string {
	if len(patterns) == 0 {
		return "(none)"
	}
	return "[" + strings.Join(patterns, ", ") + "]"
}

// buildPeriod converts the search flags into a period predicate. The
// most specific flag wins: month, then quarter, then year, then the
// custom range; no flags means no narrowing.
func buildPeriod(year int, month, quarter, from, to string, loc *time.Location) (archive.Period, error) {
	switch {
	case month != "":
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return archive.Period{}, fmt.Errorf("invalid month %q (want YYYY-MM)", month)
		}
		return archive.Period{Mode: archive.PeriodMonth, Year: t.Year(), Month: t.Month()}, nil
	case quarter != "":
		var y, q int
		if _, err := fmt.Sscanf(quarter, "%dQ%d", &y, &q); err != nil || q < 1 || q > 4 {
			return archive.Period{}, fmt.Errorf("invalid quarter %q (want YYYYQN)", quarter)
		}
		return archive.Period{Mode: archive.PeriodQuarter, Year: y, Quarter: q}, nil
	case year != 0:
		return archive.Period{Mode: archive.PeriodYear, Year: year}, nil
	case from != "" || to != "":
		p := archive.Period{Mode: archive.PeriodCustom}
		if from != "" {
			t, err := time.ParseInLocation("2006-01-02", from, loc)
			if err != nil {
				return archive.Period{}, fmt.Errorf("invalid from date %q: %w", from, err)
			}
			p.Start = t
		}
		if to != "" {
			t, err := time.ParseInLocation("2006-01-02", to, loc)
			if err != nil {
				return archive.Period{}, fmt.Errorf("invalid to date %q: %w", to, err)
			}
			p.End = t
		}
		return p, nil
	}
	return archive.Period{Mode: archive.PeriodAll}, nil
}
