package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/whotakesshowers/wts/internal/api"
	"github.com/whotakesshowers/wts/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent spin outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetString("project")
		limit, _ := cmd.Flags().GetInt("limit")
		local, _ := cmd.Flags().GetBool("local")

		if local {
			return localHistory(cmd, projectID, limit)
		}

		_, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		hs, err := newClient(cfg).ListHistory(cmd.Context(), api.HistoryQuery{ProjectID: projectID, Limit: limit})
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		if len(hs) == 0 {
			fmt.Println("No history found.")
			return nil
		}

		printHistoryHeader()
		for _, h := range hs {
			printHistoryRow(h.SelectedAt, h.ProjectName, h.CandidateName, true)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("project", "", "Only show outcomes for this project ID")
	historyCmd.Flags().Int("limit", 20, "Maximum number of outcomes")
	historyCmd.Flags().Bool("local", false, "Read the outcome log on this device instead of the server")
}

func localHistory(cmd *cobra.Command, projectID string, limit int) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	recs, err := s.OutcomeRepo().Recent(cmd.Context(), store.QueryOpts{ProjectID: projectID, Limit: limit})
	if err != nil {
		return fmt.Errorf("query outcomes: %w", err)
	}
	if len(recs) == 0 {
		fmt.Println("No outcomes recorded on this device.")
		return nil
	}

	printHistoryHeader()
	for _, r := range recs {
		who := r.CandidateName
		if !r.Success {
			who = fmt.Sprintf("%s: %s", r.ErrorKind, r.ErrorMessage)
		}
		printHistoryRow(r.ResolvedAt, r.ProjectName, who, r.Success)
	}
	return nil
}

func printHistoryHeader() {
	fmt.Printf("%-16s  %-24s  %-2s  %s\n", "When", "Project", "OK", "Candidate")
	fmt.Println(strings.Repeat("─", 72))
}

func printHistoryRow(at time.Time, project, who string, ok bool) {
	mark := "✓"
	if !ok {
		mark = "✗"
	}
	if len([]rune(project)) > 24 {
		project = string([]rune(project)[:23]) + "…"
	}
	fmt.Printf("%-16s  %-24s  %-2s  %s\n", humanize.Time(at), project, mark, who)
}
