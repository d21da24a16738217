package cmd

import (
	"fmt"

	"github.com/rooftally/rooftally/internal/catalog"
	"github.com/rooftally/rooftally/internal/project"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore all application data",
}

var backupExportCmd = &cobra.Command{
	Use:   "export <file.json>",
	Short: "Write preferences, catalog, templates, and quotes to one file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := project.LoadPreferences(project.DefaultPreferencesPath())
		if err != nil {
			return err
		}
		cat, _, err := catalog.LoadOrCreate()
		if err != nil {
			return err
		}
		templates, err := project.LoadTemplates(project.DefaultTemplatePath())
		if err != nil {
			return err
		}
		quotes, err := project.ListQuotes(resolveQuotesDir())
		if err != nil {
			return err
		}

		if err := project.ExportAllData(args[0], prefs, cat, templates, quotes); err != nil {
			return err
		}
		fmt.Printf("Backed up %d quotes to %s\n", len(quotes), args[0])
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Restore application data from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backup, err := project.ImportAllData(args[0])
		if err != nil {
			return err
		}

		if err := project.SavePreferences(project.DefaultPreferencesPath(), backup.Preferences); err != nil {
			return err
		}
		path, err := catalog.DefaultPath()
		if err != nil {
			return err
		}
		if err := catalog.Save(path, backup.Catalog); err != nil {
			return err
		}
		if err := project.SaveTemplates(project.DefaultTemplatePath(), backup.Templates); err != nil {
			return err
		}
		dir := resolveQuotesDir()
		for i := range backup.Quotes {
			if err := project.SaveQuote(dir, &backup.Quotes[i]); err != nil {
				return err
			}
		}

		fmt.Printf("Restored %d quotes from backup created %s\n", len(backup.Quotes), backup.CreatedAt)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
}
