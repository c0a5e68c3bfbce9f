package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rpupo63/portfolio-site-backend/database"
)

var (
	useMemory bool
	outPath   string
	username  string
	password  string
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-site-backend",
	Short: "REST backend for the portfolio site",
	Long: `Serves the portfolio's projects, expertise, testimonials, social links and
contact messages, plus the single admin account that manages them.

Without a subcommand the HTTP server is started.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), useMemory)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), useMemory)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(d database.Database) error {
			if err := d.Migrate(); err != nil {
				return err
			}
			log.Info().Msg("Migration complete")
			return nil
		})
	},
}

var columnReportCmd = &cobra.Command{
	Use:   "column-report",
	Short: "List database columns the models do not map, and model fields missing from the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(d database.Database) error {
			reports, err := d.ColumnReport()
			if err != nil {
				return err
			}
			database.WriteColumnReport(cmd.OutOrStdout(), reports)
			return nil
		})
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate typed query helpers with gorm.io/gen",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(d database.Database) error {
			return d.Generate(outPath)
		})
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the admin account if none exists yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		if username == "" || password == "" {
			return errors.New("--username and --password are required")
		}
		return withDatabase(cmd, func(d database.Database) error {
			if err := d.Migrate(); err != nil {
				return err
			}

			exists, err := d.UserRepo().AdminExists()
			if err != nil {
				return err
			}
			if exists {
				return errors.New("an admin account already exists")
			}

			user, err := d.UserRepo().RegisterAdmin(username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created admin %q (%s)\n", user.Username, user.ID)
			return nil
		})
	},
}

func withDatabase(cmd *cobra.Command, fn func(database.Database) error) error {
	c, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	d, err := openDatabase(c, useMemory)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	return fn(d)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&useMemory, "memory", false, "Use a throwaway in-memory SQLite database")

	generateCmd.Flags().StringVar(&outPath, "out", "./generated", "Directory for the generated query package")

	createAdminCmd.Flags().StringVar(&username, "username", "", "Admin username")
	createAdminCmd.Flags().StringVar(&password, "password", "", "Admin password")

	rootCmd.AddCommand(serveCmd, migrateCmd, columnReportCmd, generateCmd, createAdminCmd)
}
