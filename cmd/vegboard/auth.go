package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/cli"
	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/session"
	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a commissioner",
		Long: `Log in with your commissioner account. Missing credentials are asked for.
The session is kept until 'vegboard logout'.`,
		RunE: runLogin,
	}

	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")

	return cmd
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	answers, err := askMissing(cmd, []prompt{
		{label: "Email", value: email},
		{label: "Password", value: password},
	})
	if err != nil {
		return err
	}
	email, password = answers[0], answers[1]

	if errs := board.ValidateLogin(email, password); len(errs) > 0 {
		return errs
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.session.Login(ctx, a.client, email, password)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Welcome back, %s!", user.Name)))
	return err
}

func signupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a commissioner account",
		Long:  `Register a new commissioner account and log in with it.`,
		RunE:  runSignup,
	}

	cmd.Flags().String("name", "", "full name")
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password, at least 6 characters")

	return cmd
}

func runSignup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	// A password given as a flag needs no confirmation.
	confirm := password

	answers, err := askMissing(cmd, []prompt{
		{label: "Full Name", value: name},
		{label: "Email", value: email},
		{label: "Password", value: password},
		{label: "Confirm Password", value: confirm},
	})
	if err != nil {
		return err
	}
	name, email, password, confirm = answers[0], answers[1], answers[2], answers[3]

	if errs := board.ValidateSignup(name, email, password, confirm); len(errs) > 0 {
		return errs
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.session.Signup(ctx, a.client, name, email, password); err != nil {
		if errors.Is(err, common.ErrAccountExists) {
			return common.NewUserError("Account already exists. Please log in.", err)
		}
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Account created successfully!"))
	return err
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := session.New(store).Logout(ctx); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Logged out successfully."))
			return err
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in commissioner",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			sess := session.New(store)
			if err := sess.Load(ctx); err != nil {
				return err
			}

			user, ok := sess.Current()
			if !ok {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Not logged in."))
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Logged in",
				"Name:  "+user.Name,
				"Email: "+user.Email,
				"ID:    "+strconv.Itoa(user.ID),
			))
			return err
		},
	}
}

// prompt is one value a command can take from a flag or ask for.
type prompt struct {
	label string
	value string
}

// askMissing fills every empty prompt from the command's input.
func askMissing(cmd *cobra.Command, prompts []prompt) ([]string, error) {
	var reader *cli.NonBlockingReader
	answers := make([]string, len(prompts))

	for i, p := range prompts {
		if p.value != "" {
			answers[i] = p.value
			continue
		}
		if reader == nil {
			reader = cli.NewNonBlockingReader(cmd.InOrStdin())
		}

		answer, err := reader.Prompt(cmd.Context(), cmd.OutOrStdout(), p.label)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p.label, err)
		}
		answers[i] = answer
	}
	return answers, nil
}
