package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/acolombo/taskdeck/internal/cli/output"
	"github.com/acolombo/taskdeck/internal/cli/prompt"
	"github.com/acolombo/taskdeck/pkg/models"
	"github.com/acolombo/taskdeck/pkg/store"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage accounts (list, create, delete)",
}

var accountOutput string

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	RunE:  runAccountList,
}

var accountDisplayName string

var accountCreateCmd = &cobra.Command{
	Use:   "create [email]",
	Short: "Create an account",
	Long: `Create an account with the given email.

The email is prompted when not passed as an argument. The password is
prompted interactively and stored as a bcrypt hash.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAccountCreate,
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete [email]",
	Short: "Delete an account and all its tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountDelete,
}

func init() {
	accountListCmd.Flags().StringVarP(&accountOutput, "output", "o", "table", "Output format (table, json, yaml)")
	accountCreateCmd.Flags().StringVar(&accountDisplayName, "display-name", "", "Display name for the account")

	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountCreateCmd)
	accountCmd.AddCommand(accountDeleteCmd)
}

// openStore loads configuration and opens the persistence backend.
func openStore() (*store.GORMStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	s, err := store.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return s, nil
}

func runAccountList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(accountOutput)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	accounts, err := s.ListAccounts(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	printer := output.NewPrinter(os.Stdout, format)
	if format != output.FormatTable {
		return printer.Print(accounts)
	}

	if len(accounts) == 0 {
		fmt.Println("No accounts found.")
		return nil
	}

	table := output.NewTableData("ID", "EMAIL", "DISPLAY NAME", "CREATED")
	for _, account := range accounts {
		table.AddRow(
			account.ID,
			account.Email,
			account.DisplayName,
			account.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return printer.Print(table)
}

func runAccountCreate(cmd *cobra.Command, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		email, err = prompt.InputWithValidation("Email", func(input string) error {
			if !strings.Contains(input, "@") {
				return fmt.Errorf("not a valid email address")
			}
			return nil
		})
		if err != nil {
			if prompt.IsAborted(err) {
				return fmt.Errorf("aborted")
			}
			return err
		}
	}

	password, err := prompt.NewPassword()
	if err != nil {
		if prompt.IsAborted(err) {
			return fmt.Errorf("aborted")
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	account := &models.Account{
		Email:        email,
		DisplayName:  accountDisplayName,
		PasswordHash: string(hash),
	}
	id, err := s.CreateAccount(context.Background(), account)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	fmt.Printf("Account created: %s (%s)\n", email, id)
	return nil
}

func runAccountDelete(cmd *cobra.Command, args []string) error {
	email := args[0]

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	account, err := s.GetAccountByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}

	confirmed, err := prompt.ConfirmDanger(
		fmt.Sprintf("Delete account %s and all its tasks", email), email)
	if err != nil {
		if prompt.IsAborted(err) {
			return fmt.Errorf("aborted")
		}
		return err
	}
	if !confirmed {
		return nil
	}

	if err := s.DeleteAccount(ctx, account.Identity()); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	fmt.Printf("Account deleted: %s\n", email)
	return nil
}
