package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/womni/backoffice/internal/auth"
	"github.com/womni/backoffice/internal/model"
	"github.com/womni/backoffice/internal/store"
)

func newEmployeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees",
		Long:  "Create backoffice employees directly against the database, bypassing the HTTP API.",
	}

	cmd.AddCommand(newEmployeeCreateCmd())

	return cmd
}

func newEmployeeCreateCmd() *cobra.Command {
	var (
		email     string
		password  string
		firstname string
		lastname  string
		locale    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new employee",
		Example: `  backoffice employee create --email jane@womni.store --firstname Jane --lastname Doe
  backoffice employee create --email jane@womni.store  # prompts for password`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmployeeCreate(email, password, firstname, lastname, locale)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Employee email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")
	cmd.Flags().StringVar(&firstname, "firstname", "", "First name")
	cmd.Flags().StringVar(&lastname, "lastname", "", "Last name")
	cmd.Flags().StringVar(&locale, "locale", "en", "Locale")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runEmployeeCreate(email, password, firstname, lastname, locale string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("invalid email address: %q", email)
	}

	if password == "" {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		password = string(pwBytes)

		fmt.Print("Confirm password: ")
		confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		fmt.Println()

		if password != string(confirmBytes) {
			return fmt.Errorf("passwords do not match")
		}
	}

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	dsn := viper.GetString("db.dsn")
	if dsn == "" {
		return fmt.Errorf("db.dsn is required")
	}
	st, err := store.New(viper.GetString("db.driver"), dsn)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()

	exists, err := st.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("an employee with email %q already exists", email)
	}

	passwd, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	employee := model.Employee{
		ID:                  uuid.Must(uuid.NewV7()).String(),
		Locale:              locale,
		Firstname:           firstname,
		Lastname:            lastname,
		Email:               email,
		EmailPersonalStatus: "pending",
		Passwd:              passwd,
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := st.CreateEmployee(ctx, &employee); err != nil {
		return err
	}

	fmt.Printf("Created employee %q (%s)\n", email, employee.ID)
	return nil
}
