package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentor/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		agg, err := st.EventRepo().Aggregate(cmd.Context())
		if err != nil {
			return fmt.Errorf("aggregate stats: %w", err)
		}

		if agg.Questions == 0 && agg.Hints == 0 && agg.Sessions == 0 {
			fmt.Println("No study activity recorded yet.")
			return nil
		}

		fmt.Println("Lifetime Statistics")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("%-24s %d\n", "Sessions", agg.Sessions)
		fmt.Printf("%-24s %d\n", "Questions asked", agg.Questions)
		fmt.Printf("%-24s %d\n", "Hints served", agg.Hints)
		fmt.Printf("%-24s %d\n", "Degraded responses", agg.Degraded)

		printCountTable("Questions by Type", agg.ByType)
		printCountTable("Questions by Strategy", agg.ByStrategy)
		printCountTable("Inputs by Handler", agg.ByHandler)
		return nil
	},
}

func printCountTable(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		if k == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println()
	fmt.Println(title)
	fmt.Println(strings.Repeat("─", 40))
	for _, k := range keys {
		fmt.Printf("%-28s %6d\n", k, counts[k])
	}
}
