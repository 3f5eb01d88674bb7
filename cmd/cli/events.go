package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pinepals/volunteer-cli/pkg/core/model"
	"github.com/pinepals/volunteer-cli/pkg/core/services"
)

func eventsCmd() *cobra.Command {
	var (
		showPast    bool
		matchedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List volunteer events (anonymous viewers see an unannotated list)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board := services.NewEventBoard(app.api, app.logger, currentUserID())
			if err := board.Load(app.ctx); err != nil {
				return err
			}

			var events []model.Event
			switch {
			case showPast:
				events = board.Past()
			case matchedOnly:
				events = board.SkillMatched()
			default:
				events = board.Upcoming()
			}

			if len(events) == 0 {
				fmt.Println("No events found.")
				return nil
			}

			fmt.Printf("\nFound %d events:\n\n", len(events))
			for _, ev := range events {
				printEvent(board, ev)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPast, "past", false, "Show past events instead of upcoming ones")
	cmd.Flags().BoolVar(&matchedOnly, "matched", false, "Only show events matching your skills")

	return cmd
}

func printEvent(board *services.EventBoard, ev model.Event) {
	status := ""
	switch {
	case board.IsPast(ev):
		status = " [completed]"
	case ev.IsRegistered:
		status = " [registered]"
	}

	fmt.Printf("  #%d %s (%s)%s\n", ev.ID, ev.Name, ev.Urgency, status)
	fmt.Printf("      %s · %s · %d/%d volunteers\n",
		ev.TimeLabel, ev.Location, ev.CurrentVolunteers, ev.MaxVolunteers)
	if len(ev.RequiredSkills) > 0 {
		line := "      Skills: " + strings.Join(ev.RequiredSkills, ", ")
		if ev.SkillMatchCount > 0 {
			line += fmt.Sprintf(" (%d match your profile)", ev.SkillMatchCount)
		}
		fmt.Println(line)
	}
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <event_id>",
		Short: "Register for an upcoming event",
		Args:  cobra.ExactArgs(1),
		RunE:  toggleRegistration(false),
	}
}

func unregisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unregister <event_id>",
		Short: "Cancel your registration for an event",
		Args:  cobra.ExactArgs(1),
		RunE:  toggleRegistration(true),
	}
}

func toggleRegistration(unregister bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := guardView(false); err != nil {
			return err
		}

		eventID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("event_id must be a number: %w", err)
		}

		board := services.NewEventBoard(app.api, app.logger, currentUserID())
		if err := board.Load(app.ctx); err != nil {
			return err
		}

		for _, ev := range board.Events() {
			if ev.ID != eventID {
				continue
			}
			if ev.IsRegistered != unregister {
				if unregister {
					fmt.Println("You are not registered for this event.")
				} else {
					fmt.Println("You are already registered for this event.")
				}
				return nil
			}
		}

		if err := board.Toggle(app.ctx, eventID); err != nil {
			return err
		}

		if unregister {
			fmt.Println("✓ Successfully unregistered from the event.")
		} else {
			fmt.Println("✓ Successfully registered for the event!")
		}
		return nil
	}
}
