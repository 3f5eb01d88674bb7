package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pinepals/volunteer-cli/pkg/core/services"
)

func tasksCmd() *cobra.Command {
	var openOnly bool

	cmd := &cobra.Command{
		Use:   "tasks <event_id>",
		Short: "List the tasks on an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}

			if openOnly {
				tasks, err := app.api.UnassignedEventTasks(app.ctx, eventID)
				if err != nil {
					return err
				}
				if len(tasks) == 0 {
					fmt.Println("No open tasks on this event.")
					return nil
				}
				fmt.Printf("\nOpen tasks for event #%d:\n\n", eventID)
				for _, t := range tasks {
					fmt.Printf("  #%d %s - %d points\n", t.ID, t.Name, t.Score)
				}
				return nil
			}

			board := services.NewTaskBoard(app.api, app.logger, eventID, currentUserID())
			if err := board.Load(app.ctx); err != nil {
				return err
			}

			tasks := board.Tasks()
			if len(tasks) == 0 {
				fmt.Println("No tasks on this event.")
				return nil
			}

			fmt.Printf("\nTasks for event #%d:\n\n", eventID)
			for _, t := range tasks {
				state := "open"
				switch {
				case t.Completed:
					state = "completed"
				case t.Assigned():
					state = "claimed"
				}
				fmt.Printf("  #%d %s - %d points [%s]\n", t.ID, t.Name, t.Score, state)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&openOnly, "open", false, "Only show tasks nobody has claimed")

	return cmd
}

func claimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim <event_id> <task_id>",
		Short: "Claim an open task on an event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(false); err != nil {
				return err
			}

			eventID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}
			taskID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("task_id must be a number: %w", err)
			}

			board := services.NewTaskBoard(app.api, app.logger, eventID, currentUserID())
			if err := board.Load(app.ctx); err != nil {
				return err
			}

			if err := board.Claim(app.ctx, taskID); err != nil {
				return err
			}

			progress := board.Progress()
			fmt.Println("✓ Task claimed!")
			fmt.Printf("  Your progress on this event: %d/%d points (%.0f%%)\n",
				progress.EarnedScore, progress.PossibleScore, progress.Percent)
			return nil
		},
	}
}
