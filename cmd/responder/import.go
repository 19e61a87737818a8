package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
	"github.com/cid-docencia/wa-responder/internal/biz/repo"
	"github.com/cid-docencia/wa-responder/internal/conf"
)

var replaceConditions bool

var importCmd = &cobra.Command{
	Use:   "import-conditions <file.yaml>",
	Short: "Load a rule table from YAML",
	Long:  "Stores every condition of a YAML file in file order. Existing conditions with the same id are replaced and keep their position.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := conf.LoadConditionsFile(args[0])
		if err != nil {
			return err
		}

		a, err := newApp(conf.LoadFromEnv())
		if err != nil {
			return err
		}
		defer a.Close()

		stored, removed, err := importConditions(cmd.Context(), a.repos.Condition, table, replaceConditions)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d conditions", stored)
		if removed > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), ", removed %d", removed)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&replaceConditions, "replace", false, "delete stored conditions that are not in the file")
}

// importConditions writes table into the store.
// With replace, stored conditions missing from table are deleted first.
func importConditions(ctx context.Context, conditions repo.ConditionRepo, table domain.ConditionTable, replace bool) (int, int, error) {
	removed := 0
	if replace {
		existing, err := conditions.List(ctx)
		if err != nil {
			return 0, 0, fmt.Errorf("list conditions: %w", err)
		}
		for _, c := range existing {
			if table.Get(c.ID) != nil {
				continue
			}
			if err := conditions.Delete(ctx, c.ID); err != nil {
				return 0, removed, fmt.Errorf("delete condition %s: %w", c.ID, err)
			}
			removed++
		}
	}

	for i, c := range table {
		if err := conditions.Put(ctx, c); err != nil {
			return i, removed, fmt.Errorf("store condition %s: %w", c.ID, err)
		}
	}
	return len(table), removed, nil
}
