package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pinepals/volunteer-cli/pkg/session"
)

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> [password]",
		Short: "Log in to your Pine Pals account",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]
			var password string
			if len(args) > 1 {
				password = args[1]
			} else {
				fmt.Print("Password: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if err := app.session.Login(app.ctx, email, password); err != nil {
				return err
			}

			user := app.session.CurrentUser()
			fmt.Printf("\n✓ Logged in as %s (%s)\n", user.Name, user.Email)
			if app.session.IsAdmin() {
				fmt.Println("  Admin commands are available.")
			}
			return nil
		},
	}
}

func signupCmd() *cobra.Command {
	var (
		name      string
		email     string
		password  string
		state     string
		skills    []string
		adminTier bool
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new Pine Pals account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.session.Signup(app.ctx, session.SignupParams{
				Name:      name,
				Email:     email,
				Password:  password,
				State:     state,
				Skills:    skills,
				AdminTier: adminTier,
			})
			if err != nil {
				return err
			}

			user := app.session.CurrentUser()
			fmt.Printf("\n✓ Account created. Logged in as %s (%s)\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (at least 6 characters)")
	cmd.Flags().StringVar(&state, "state", "", "Two-letter state code")
	cmd.Flags().StringSliceVar(&skills, "skills", nil, "Comma-separated skill list")
	cmd.Flags().BoolVar(&adminTier, "admin", false, "Request an admin-tier account")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("state")

	return cmd
}

func skillsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skills",
		Short: "List the skills you can put on a profile or signup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			skills, err := app.api.ListSkills(app.ctx)
			if err != nil {
				return err
			}

			if len(skills) == 0 {
				fmt.Println("No skills defined yet.")
				return nil
			}
			for _, skill := range skills {
				fmt.Printf("  %s\n", skill)
			}
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.session.Logout()
			fmt.Println("✓ Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := app.session.CurrentUser()
			if user == nil {
				fmt.Println("Not logged in.")
				return nil
			}

			fmt.Printf("%s <%s>\n", user.Name, user.Email)
			fmt.Printf("  Role:  %s\n", user.Role)
			if user.State != "" {
				fmt.Printf("  State: %s\n", user.State)
			}
			if len(user.Skills) > 0 {
				fmt.Printf("  Skills: %s\n", strings.Join(user.Skills, ", "))
			}
			return nil
		},
	}
}
