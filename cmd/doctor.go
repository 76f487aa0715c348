package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

const doctorTimeout = 5 * time.Second

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check provider and Redis connectivity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}
		out := cmd.OutOrStdout()
		failed := 0

		report := func(name string, err error) {
			if err != nil {
				failed++
				fmt.Fprintf(out, "%-10s %s %v\n", name, color.RedString("FAIL"), err)
				return
			}
			fmt.Fprintf(out, "%-10s %s\n", name, color.GreenString("OK"))
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), doctorTimeout)
		defer cancel()

		fmt.Fprintf(out, "Checking provider at %s...\n", appInstance.Config.Provider.BaseURL)
		_, err = appInstance.Provider.Categories(ctx)
		report("provider", err)

		fmt.Fprintf(out, "Checking Redis at %s...\n", appInstance.Config.Redis.Address)
		rdb := redis.NewClient(&redis.Options{
			Addr:     appInstance.Config.Redis.Address,
			Password: appInstance.Config.Redis.Password,
			DB:       appInstance.Config.Redis.DB,
		})
		defer rdb.Close()
		report("redis", rdb.Ping(ctx).Err())

		fmt.Fprintf(out, "Taxonomy: %d categories, %d narratives\n",
			len(appInstance.Tables.Categories()), len(appInstance.Tables.Narratives()))

		if appInstance.Config.Entities.Enabled {
			fmt.Fprintf(out, "Entity extraction: %s (%s)\n", color.GreenString("enabled"), appInstance.Config.Entities.Model)
		} else {
			fmt.Fprintf(out, "Entity extraction: %s\n", color.YellowString("disabled"))
		}
		if total, err := appInstance.CostTracker.TotalCost(ctx); err == nil {
			fmt.Fprintf(out, "AI cost this run: $%.6f\n", total)
		}

		if failed > 0 {
			return fmt.Errorf("%d check(s) failed; analysis will fall back to heuristics where needed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
