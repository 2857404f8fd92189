package cli

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/albertcheruiyot/recipebox/internal/core/service"
)

const minCLIPasswordLength = 8

var (
	addBio      string
	addImageURL string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
	Long:  "Manage user accounts",
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		// Prompt for password
		fmt.Print("Enter password: ")
		password, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		fmt.Print("Confirm password: ")
		confirmPassword, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		if err := checkNewPassword(string(password), string(confirmPassword)); err != nil {
			return err
		}

		in := service.SignupInput{
			Username: username,
			Password: string(password),
		}
		if addBio != "" {
			in.Bio = &addBio
		}
		if addImageURL != "" {
			in.ImageURL = &addImageURL
		}

		user, err := services.AuthService.Signup(cmd.Context(), in)
		if err != nil {
			var svcErr *service.ServiceError
			if errors.As(err, &svcErr) && svcErr.Kind != service.KindPersistence {
				return errors.New(svcErr.Message)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Printf("User '%s' created with id %d\n", user.Username, user.ID)
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.UserRepo.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		if len(users) == 0 {
			fmt.Println("No users found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tCREATED AT")
		for _, user := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\n",
				user.ID,
				user.Username,
				user.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return w.Flush()
	},
}

// checkNewPassword applies the rules for interactively created accounts.
func checkNewPassword(password, confirm string) error {
	if password != confirm {
		return errors.New("passwords do not match")
	}
	if len(password) < minCLIPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minCLIPasswordLength)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersListCmd)

	usersAddCmd.Flags().StringVar(&addBio, "bio", "", "short biography")
	usersAddCmd.Flags().StringVar(&addImageURL, "image-url", "", "profile image URL")
}
