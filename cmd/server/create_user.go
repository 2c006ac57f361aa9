package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/propertypinoy/website/internal/config"
	"github.com/propertypinoy/website/internal/database"
	"github.com/propertypinoy/website/internal/dto"
	"github.com/propertypinoy/website/internal/repository"
	"github.com/propertypinoy/website/internal/services"
)

var newUser dto.CreateUserRequest

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an application user and profile, bypassing email confirmation",
	Long: "Create an identity with a pre-confirmed email plus its profile. Use --user-type Admin " +
		"to bootstrap the first administrator. The password is prompted for when --password is omitted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := requireIdentityConfig(cfg); err != nil {
			return err
		}
		if newUser.Password == "" {
			password, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			newUser.Password = password
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		users := services.NewUserService(newIdentityClient(cfg), repository.NewStore(db))
		res, err := users.CreateUser(cmd.Context(), newUser)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "created user %s (%s)\n", res.User.Email, res.User.ID)
		if res.CompanyID != nil {
			fmt.Fprintf(out, "created company %s\n", res.CompanyID)
		}
		return nil
	},
}

func init() {
	f := createUserCmd.Flags()
	f.StringVar(&newUser.Email, "email", "", "email address (required)")
	f.StringVar(&newUser.Password, "password", "", "password; prompted for when omitted")
	f.StringVar(&newUser.FirstName, "first-name", "", "first name (required)")
	f.StringVar(&newUser.LastName, "last-name", "", "last name (required)")
	f.StringVar(&newUser.MiddleName, "middle-name", "", "middle name")
	f.StringVar(&newUser.Phone, "phone", "", "phone number")
	f.StringVar(&newUser.City, "city", "", "city")
	f.StringVar(&newUser.Country, "country", "", "country")
	f.StringVar(&newUser.UserType, "user-type", "", "user type id or label, e.g. Admin")
	f.StringVar(&newUser.CompanyName, "company-name", "", "create and link a company with this name")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("first-name")
	_ = createUserCmd.MarkFlagRequired("last-name")
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	fd := int(os.Stdin.Fd())
	var (
		password string
		err      error
	)
	if term.IsTerminal(fd) {
		var raw []byte
		raw, err = term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		password = string(raw)
	} else {
		password, err = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		password = strings.TrimRight(password, "\r\n")
		if errors.Is(err, io.EOF) && password != "" {
			err = nil
		}
	}
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}
