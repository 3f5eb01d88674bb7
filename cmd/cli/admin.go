package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pinepals/volunteer-cli/pkg/clients/apiclient"
	"github.com/pinepals/volunteer-cli/pkg/core/services"
)

func attendanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attendance",
		Short: "List volunteers who attended your events (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(true); err != nil {
				return err
			}

			records, err := services.LoadAttendance(app.ctx, app.api, app.logger, currentUserID())
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("No volunteer attendance records yet.")
				return nil
			}

			fmt.Printf("\n%d attendance records:\n\n", len(records))
			for _, r := range records {
				fmt.Printf("  %s - %s (%s, %s)\n", r.Name, r.EventName, r.Date, r.Location)
				fmt.Printf("      volunteer #%d, event #%d\n", r.VolunteerID, r.EventID)
			}
			return nil
		},
	}
}

func rateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <volunteer_id> <event_id> <task_id> <percent>",
		Short: "Rate a volunteer's task as a percentage of its score (admin)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(true); err != nil {
				return err
			}

			nums := make([]int, 4)
			for i, name := range []string{"volunteer_id", "event_id", "task_id", "percent"} {
				n, err := strconv.Atoi(args[i])
				if err != nil {
					return fmt.Errorf("%s must be a number: %w", name, err)
				}
				nums[i] = n
			}
			volunteerID, eventID, taskID, percent := nums[0], nums[1], nums[2], nums[3]

			sheet := services.NewRatingSheet(app.api, app.logger, volunteerID, eventID)
			if err := sheet.Load(app.ctx); err != nil {
				return err
			}

			for _, t := range sheet.Tasks() {
				if t.ID == taskID && !t.Completed {
					fmt.Printf("Rating '%s' at %d%% would award %d/%d points.\n",
						t.Name, percent, services.ScorePreview(t.Score, percent), t.Score)
				}
			}

			result, err := sheet.Rate(app.ctx, taskID, percent)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Task rated: %d/%d points (%d%%)\n",
				result.ActualScore, result.OriginalScore, result.RatingPercent)
			return nil
		},
	}
}

func matchCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "match <volunteer_id>",
		Short: "Match a volunteer to the best open event (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(true); err != nil {
				return err
			}

			volunteerID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("volunteer_id must be a number: %w", err)
			}

			if dryRun {
				data, err := services.LoadMatchingData(app.ctx, app.api, app.logger)
				if err != nil {
					return err
				}
				for _, v := range data.Volunteers {
					if v.ID != volunteerID {
						continue
					}
					if suggestion := services.SuggestMatch(v, data.Events); suggestion != nil {
						fmt.Printf("Would match %s with '%s' (#%d)\n", v.Name, suggestion.Name, suggestion.ID)
					} else {
						fmt.Printf("No open event matches %s's skills.\n", v.Name)
					}
					return nil
				}
				return fmt.Errorf("volunteer %d not found", volunteerID)
			}

			match, err := services.FindAndCreateMatch(app.ctx, app.api, app.logger, volunteerID)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Matched %s with '%s'\n", match.VolunteerName, match.EventName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the suggested match without creating it")

	return cmd
}

func manageEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manage-events",
		Short: "Create, edit and delete events (admin)",
	}

	cmd.AddCommand(manageEventsListCmd())
	cmd.AddCommand(manageEventsCreateCmd())
	cmd.AddCommand(manageEventsEditCmd())
	cmd.AddCommand(manageEventsDeleteCmd())

	return cmd
}

func manageEventsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(true); err != nil {
				return err
			}

			events, err := app.api.ManagerEvents(app.ctx)
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Println("No events yet.")
				return nil
			}
			for _, ev := range events {
				fmt.Printf("  #%d %s - %s (%d/%d volunteers)\n",
					ev.ID, ev.Name, ev.TimeLabel, ev.CurrentVolunteers, ev.MaxVolunteers)
			}
			return nil
		},
	}
}

func manageEventsCreateCmd() *cobra.Command {
	var input apiclient.EventInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(true); err != nil {
				return err
			}

			event, err := app.api.CreateEvent(app.ctx, input)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Event created: #%d %s\n", event.ID, event.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Event name")
	cmd.Flags().StringVar(&input.Description, "description", "", "Event description")
	cmd.Flags().StringVar(&input.Location, "location", "", "Event location")
	cmd.Flags().StringVar(&input.Date, "date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&input.Urgency, "urgency", "medium", "Urgency tier (low|medium|high)")
	cmd.Flags().IntVar(&input.MaxVolunteers, "max-volunteers", 0, "Volunteer capacity")
	cmd.Flags().StringSliceVar(&input.RequiredSkills, "skills", nil, "Required skills, comma-separated")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("location")
	cmd.MarkFlagRequired("date")

	return cmd
}

func manageEventsEditCmd() *cobra.Command {
	var input apiclient.EventInput

	cmd := &cobra.Command{
		Use:   "edit <event_id>",
		Short: "Edit an existing event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(true); err != nil {
				return err
			}

			eventID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}

			event, err := app.api.UpdateEvent(app.ctx, eventID, input)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Event updated: #%d %s\n", event.ID, event.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Event name")
	cmd.Flags().StringVar(&input.Description, "description", "", "Event description")
	cmd.Flags().StringVar(&input.Location, "location", "", "Event location")
	cmd.Flags().StringVar(&input.Date, "date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&input.Urgency, "urgency", "", "Urgency tier (low|medium|high)")
	cmd.Flags().IntVar(&input.MaxVolunteers, "max-volunteers", 0, "Volunteer capacity")
	cmd.Flags().StringSliceVar(&input.RequiredSkills, "skills", nil, "Required skills, comma-separated")

	return cmd
}

func manageEventsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <event_id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(true); err != nil {
				return err
			}

			eventID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("event_id must be a number: %w", err)
			}

			if err := app.api.DeleteEvent(app.ctx, eventID); err != nil {
				return err
			}
			fmt.Println("✓ Event deleted")
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Download the volunteer-history CSV report (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(true); err != nil {
				return err
			}

			data, err := app.api.VolunteerHistoryCSV(app.ctx, currentUserID())
			if err != nil {
				return err
			}

			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Printf("✓ Report written to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "volunteer_report.csv", "Output file")

	return cmd
}
