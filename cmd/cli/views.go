package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pinepals/volunteer-cli/pkg/clients/apiclient"
	"github.com/pinepals/volunteer-cli/pkg/core/services"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show your volunteering history with per-event scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(false); err != nil {
				return err
			}

			entries, err := services.LoadVolunteerHistory(app.ctx, app.api, app.logger, currentUserID())
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No volunteering history yet.")
				return nil
			}

			fmt.Printf("\nYour volunteering history (%d events):\n\n", len(entries))
			for _, entry := range entries {
				fmt.Printf("  %s\n", entry.Match.EventName)
				fmt.Printf("      Score: %d/%d (%.0f%%)\n",
					entry.Progress.EarnedScore, entry.Progress.PossibleScore, entry.Progress.Percent)
				for _, t := range entry.Tasks {
					mark := " "
					if t.Completed {
						mark = "✓"
					}
					fmt.Printf("      %s %s (%d points)\n", mark, t.Name, t.Score)
				}
			}
			return nil
		},
	}
}

func leaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top volunteers by points earned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.api.Leaderboard(app.ctx)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No volunteers yet. Be the first to earn points!")
				return nil
			}

			fmt.Println("\nVolunteer Leaderboard")
			for i, entry := range entries {
				fmt.Printf("  %2d. %-25s %d points\n", i+1, entry.Name, entry.TotalPoints)
			}
			return nil
		},
	}
}

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show your notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(false); err != nil {
				return err
			}

			panel := services.NewNotificationPanel(app.api, app.logger)
			if err := panel.Load(app.ctx); err != nil {
				return err
			}

			notifications := panel.Notifications()
			if len(notifications) == 0 {
				fmt.Println("No notifications.")
				return nil
			}

			fmt.Printf("\nNotifications (%d unread):\n\n", panel.UnreadCount())
			for _, n := range notifications {
				marker := " "
				if !n.Read {
					marker = "*"
				}
				fmt.Printf("  %s #%d %s\n", marker, n.ID, n.Message)
			}
			return nil
		},
	}

	cmd.AddCommand(notificationActionCmd("read", "Mark a notification as read",
		func(panel *services.NotificationPanel, id int) error {
			return panel.MarkRead(app.ctx, id)
		}))
	cmd.AddCommand(notificationActionCmd("dismiss", "Dismiss a notification",
		func(panel *services.NotificationPanel, id int) error {
			return panel.Dismiss(app.ctx, id)
		}))
	cmd.AddCommand(notificationSendCmd())

	return cmd
}

func notificationSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <message>",
		Short: "Post a notification to yourself (reminders)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(false); err != nil {
				return err
			}

			notification, err := app.api.CreateNotification(app.ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("✓ Notification #%d posted\n", notification.ID)
			return nil
		},
	}
}

func notificationActionCmd(verb, short string, action func(*services.NotificationPanel, int) error) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <notification_id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(false); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("notification_id must be a number: %w", err)
			}

			panel := services.NewNotificationPanel(app.api, app.logger)
			if err := panel.Load(app.ctx); err != nil {
				return err
			}
			if err := action(panel, id); err != nil {
				return err
			}

			fmt.Println("✓ Done")
			return nil
		},
	}
}

func profileCmd() *cobra.Command {
	var (
		name   string
		state  string
		skills []string
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := guardView(false); err != nil {
				return err
			}

			if name != "" || state != "" || len(skills) > 0 {
				update := apiclient.ProfileUpdate{Name: name, State: state, Skills: skills}
				if err := app.api.UpdateProfile(app.ctx, update); err != nil {
					return err
				}
				fmt.Println("✓ Profile updated")
			}

			user, err := app.api.Profile(app.ctx)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s <%s>\n", user.Name, user.Email)
			if user.State != "" {
				fmt.Printf("  State:  %s\n", user.State)
			}
			if len(user.Skills) > 0 {
				fmt.Printf("  Skills: %s\n", strings.Join(user.Skills, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Update display name")
	cmd.Flags().StringVar(&state, "state", "", "Update state code")
	cmd.Flags().StringSliceVar(&skills, "skills", nil, "Update skill list")

	return cmd
}
