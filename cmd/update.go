package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/smazurov/lightnode/internal/updater"
	"github.com/spf13/cobra"
)

// CreateUpdateCmd creates the update command, which replaces the installed
// binary with a newer GitHub release.
func CreateUpdateCmd() *cobra.Command {
	var (
		opts     updater.Options
		check    bool
		rollback bool
		dev      bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update lightnode to the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := updater.New(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch {
			case rollback:
				if err := u.Rollback(); err != nil {
					return err
				}
				fmt.Fprintln(out, "Rolled back. Restart the lightnode service to run the previous version.")
				return nil
			case dev:
				if err := u.ApplyDevBuild(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(out, "Dev build installed. Restart the lightnode service to run it.")
				return nil
			case check:
				info, err := u.Check(cmd.Context())
				if err != nil {
					return err
				}
				return printUpdateInfo(out, info, asJSON)
			}

			info, err := u.Apply(cmd.Context())
			if errors.Is(err, &updater.Error{Code: updater.ErrCodeNoUpdate}) {
				return printUpdateInfo(out, info, asJSON)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Updated %s -> %s. Restart the lightnode service to run it.\n",
				info.CurrentVersion, info.LatestVersion)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&check, "check", false, "Only report whether an update is available")
	f.BoolVar(&rollback, "rollback", false, "Restore the binary replaced by the last update")
	f.BoolVar(&dev, "dev", false, "Install the rolling dev build")
	f.BoolVar(&asJSON, "json", false, "Print release information as JSON")
	f.BoolVar(&opts.Prerelease, "prerelease", false, "Include prereleases")
	f.StringVar(&opts.Repository, "repo", updater.DefaultRepository, "GitHub repository slug")
	cmd.MarkFlagsMutuallyExclusive("check", "rollback", "dev")
	return cmd
}

func printUpdateInfo(w io.Writer, info *updater.UpdateInfo, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	if !info.UpdateAvailable {
		_, err := fmt.Fprintf(w, "lightnode %s is up to date\n", info.CurrentVersion)
		return err
	}
	_, err := fmt.Fprintf(w, "Update available: %s -> %s\n%s\n",
		info.CurrentVersion, info.LatestVersion, info.ReleaseURL)
	return err
}
