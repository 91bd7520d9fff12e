package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Zachkp/neural-glass/internal/assistant"
	"github.com/Zachkp/neural-glass/internal/config"
	"github.com/Zachkp/neural-glass/internal/content"
	"github.com/Zachkp/neural-glass/internal/navigator"
	"github.com/Zachkp/neural-glass/internal/store"
	"github.com/Zachkp/neural-glass/internal/viewer"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(20)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	answerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5227FF")).
			Padding(0, 1).
			Width(72)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

var (
	configFile   string
	assistantURL string
	timeout      time.Duration
	dbPath       string

	width     int
	height    int
	dotSize   float64
	gap       float64
	proximity float64
	baseColor string
	active    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "glass",
		Short: "neural glass portfolio tools",
	}
	rootCmd.PersistentFlags().StringVar(&assistantURL, "assistant", config.DefaultAssistantURL, "assistant base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", config.DefaultAssistantTimeout, "assistant request timeout")

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "open the interactive dot grid",
		RunE:  runGrid,
	}
	gridCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	gridCmd.Flags().IntVar(&width, "width", 0, "window width")
	gridCmd.Flags().IntVar(&height, "height", 0, "window height")
	gridCmd.Flags().Float64Var(&dotSize, "dot-size", 0, "dot diameter")
	gridCmd.Flags().Float64Var(&gap, "gap", 0, "space between dots")
	gridCmd.Flags().Float64Var(&proximity, "proximity", 0, "pointer influence radius")
	gridCmd.Flags().StringVar(&baseColor, "base-color", "", "resting dot color")
	gridCmd.Flags().StringVar(&active, "active-color", "", "dot color under the pointer")

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default grid config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SaveViewer(args[0], config.DefaultViewer()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	askCmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "ask the portfolio assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}

	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "check assistant health",
		RunE:  runPing,
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "show visitor and chat statistics",
		RunE:  runStats,
	}
	statsCmd.Flags().StringVar(&dbPath, "db", config.DefaultDatabasePath, "database path")

	rootCmd.AddCommand(gridCmd, initCmd, askCmd, pingCmd, statsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultViewer()
	if configFile != "" {
		loaded, err := config.LoadViewer(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}
	if dotSize > 0 {
		cfg.Grid.DotSize = dotSize
	}
	if cmd.Flags().Changed("gap") {
		cfg.Grid.Gap = gap
	}
	if proximity > 0 {
		cfg.Grid.Proximity = proximity
	}
	if baseColor != "" {
		cfg.Grid.BaseColor = baseColor
	}
	if active != "" {
		cfg.Grid.ActiveColor = active
	}

	return viewer.Run(cfg)
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	client := assistant.NewClient(assistantURL, timeout)

	reply, err := client.Chat(context.Background(), query)
	if err != nil {
		fmt.Println(failStyle.Render("assistant offline"), dimStyle.Render(err.Error()))
		return err
	}

	fmt.Println(titleStyle.Render("Q: " + query))
	fmt.Println(answerStyle.Render(reply.Text))
	if reply.Resume {
		fmt.Println(dimStyle.Render("resume available at /" + content.ResumePath))
	}
	if targets := navigator.Targets(query); len(targets) > 0 {
		fmt.Println(dimStyle.Render("page would scroll to " + strings.Join(targets, ", ")))
	}
	return nil
}

func runPing(cmd *cobra.Command, args []string) error {
	client := assistant.NewClient(assistantURL, timeout)
	start := time.Now()
	err := client.Health(context.Background())
	took := time.Since(start).Round(time.Millisecond)

	if err != nil {
		fmt.Println(failStyle.Render("● offline"), dimStyle.Render(client.BaseURL()), dimStyle.Render(err.Error()))
		return err
	}
	fmt.Println(okStyle.Render("● online"), dimStyle.Render(fmt.Sprintf("%s in %s", client.BaseURL(), took)))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Portfolio statistics"))
	rows := []struct {
		label string
		value int64
	}{
		{"total visitors", stats.TotalVisitors},
		{"unique visitors", stats.UniqueVisitors},
		{"visitors today", stats.VisitorsToday},
		{"visitors this week", stats.VisitorsThisWeek},
		{"chats", stats.TotalChats},
		{"unanswered chats", stats.UnansweredChats},
	}
	for _, r := range rows {
		fmt.Println(labelStyle.Render(r.label) + valueStyle.Render(fmt.Sprint(r.value)))
	}

	if len(stats.RecentChats) > 0 {
		fmt.Println()
		fmt.Println(titleStyle.Render("Recent questions"))
		for _, c := range stats.RecentChats {
			fmt.Println(dimStyle.Render(c.Timestamp.Format("2006-01-02 15:04")) + "  " + valueStyle.Render(c.Query))
		}
	}
	return nil
}
