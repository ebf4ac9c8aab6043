package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inkpost/inkpost/internal/daemon"
)

func init() { //nolint: gochecknoinits
	userCmd.AddCommand(userPermissionsCmd, userRotateKeyCmd, userDisableCmd, userEnableCmd)
	rootCmd.AddCommand(userCmd)
}

var (
	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage API users",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
	}

	userPermissionsCmd = &cobra.Command{
		Use:   "permissions <id>",
		Short: "List the permissions granted to a user",
		Args:  cobra.ExactArgs(1),
		RunE: withCore(func(cmd *cobra.Command, core *daemon.Core, id uint64) error {
			user, err := core.Auth.GetUserByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			permissions, err := core.Auth.GetUserPermissions(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (%s)\n", user.Name, user.Role.Name)

			for _, p := range permissions {
				_, _ = fmt.Fprintln(out, p)
			}

			return nil
		}),
	}

	userRotateKeyCmd = &cobra.Command{
		Use:   "rotate-key <id>",
		Short: "Replace the API key of a user and print the new key",
		Args:  cobra.ExactArgs(1),
		RunE: withCore(func(cmd *cobra.Command, core *daemon.Core, id uint64) error {
			key, err := core.Auth.RotateAPIKey(cmd.Context(), id)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), key)

			return err
		}),
	}

	userDisableCmd = &cobra.Command{
		Use:   "disable <id>",
		Short: "Reject the API key of a user",
		Args:  cobra.ExactArgs(1),
		RunE:  setActive(false),
	}

	userEnableCmd = &cobra.Command{
		Use:   "enable <id>",
		Short: "Accept the API key of a user again",
		Args:  cobra.ExactArgs(1),
		RunE:  setActive(true),
	}
)

func setActive(active bool) func(*cobra.Command, []string) error {
	return withCore(func(cmd *cobra.Command, core *daemon.Core, id uint64) error {
		if err := core.Auth.SetActive(cmd.Context(), id, active); err != nil {
			return err
		}

		state := "disabled"
		if active {
			state = "enabled"
		}

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "user %d %s\n", id, state)

		return err
	})
}

// withCore parses the user id argument and opens the settings stack around fn.
func withCore(fn func(*cobra.Command, *daemon.Core, uint64) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		core, err := daemon.OpenCore(cmd.Context(), &cfg)
		if err != nil {
			return err
		}

		defer func() {
			_ = core.Close()
		}()

		return fn(cmd, core, id)
	}
}
