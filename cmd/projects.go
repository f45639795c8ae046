package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects on the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client := newClient(cfg)

		projects, err := client.ListProjects(cmd.Context())
		if err != nil {
			return fmt.Errorf("list projects: %w", err)
		}
		if len(projects) == 0 {
			fmt.Println("No projects found.")
			return nil
		}

		fmt.Printf("%-36s  %-24s  %s\n", "ID", "Name", strings.ToUpper(cfg.Display.CandidateTerm))
		fmt.Println(strings.Repeat("─", 72))
		for _, p := range projects {
			count := "?"
			if rp, err := p.Roster(); err == nil {
				count = fmt.Sprint(len(rp.CandidateIDs))
			}
			fmt.Printf("%-36s  %-24s  %s\n", p.ID, p.Name, count)
		}
		return nil
	},
}
