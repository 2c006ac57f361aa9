package main

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/propertypinoy/website/internal/config"
	"github.com/propertypinoy/website/internal/database"
	"github.com/propertypinoy/website/internal/repository"
)

var userTypesCmd = &cobra.Command{
	Use:   "user-types",
	Short: "List user types",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(config.Load())
		if err != nil {
			return err
		}
		defer database.Close(db)

		types, err := repository.NewStore(db).ListUserTypes(cmd.Context())
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		table := tablewriter.NewWriter(&buf)
		table.Header("ID", "Type")
		for _, t := range types {
			if err := table.Append([]string{t.ID.String(), t.TypeName}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), buf.String())
		return nil
	},
}
