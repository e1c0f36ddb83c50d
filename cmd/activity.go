package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/frahmantamala/hrconsole/internal/activity"
	activityPostgres "github.com/frahmantamala/hrconsole/internal/activity/postgres"
	"github.com/frahmantamala/hrconsole/internal/core/events"
	"github.com/spf13/cobra"
)

var activityLimit int

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Print the most recent activity log entries",
	Long:  `Print the activity log recorded from console events, newest first`,
	Run: func(cmd *cobra.Command, args []string) {
		printActivity(activityLimit)
	},
}

var activityTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the event types the activity log records",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range events.AllEntityEventTypes() {
			fmt.Println(t)
		}
	},
}

func printActivity(limit int) {
	ctx := context.Background()
	deps, err := initializeDependencies(ctx)
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}
	defer deps.Close()

	if deps.Gorm == nil {
		log.Fatal("activity log is disabled; set activity.enabled and configure a database")
	}

	service := activity.NewService(activityPostgres.NewActivityRepository(deps.Gorm), deps.Config.Activity.DefaultLimit, deps.Logger)
	entries, err := service.List(ctx, limit)
	if err != nil {
		log.Fatalf("failed to list activity: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OCCURRED AT\tEVENT\tENTITY\tACTOR\tSUMMARY")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.OccurredAt.Format(time.RFC3339), e.EventType, e.EntityID, e.ActorID, e.Summary)
	}
	_ = w.Flush()
}

func init() {
	activityCmd.Flags().IntVarP(&activityLimit, "limit", "n", 0, "number of entries to print (0 uses the configured default)")
	activityCmd.AddCommand(activityTypesCmd)
}
