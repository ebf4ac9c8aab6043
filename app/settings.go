package app

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inkpost/inkpost/internal/daemon"
	"github.com/inkpost/inkpost/internal/settings"
)

func init() { //nolint: gochecknoinits
	settingsListCmd.Flags().StringVar(&settingsType, "type", "", "Comma separated setting types, e.g. blog,theme")

	settingsCmd.AddCommand(settingsListCmd, settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

var (
	settingsType string

	settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Read and change settings as the system user",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
	}

	settingsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List all settings",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, store *settings.Store, _ []string) error {
			res, err := store.Browse(cmd.Context(), settings.Options{Context: settings.Internal(), Type: settingsType})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd
			_, _ = fmt.Fprintln(w, "KEY\tTYPE\tVALUE")

			for _, s := range res.Settings {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", s.Key, s.Type, displayValue(s.Value))
			}

			return w.Flush()
		}),
	}

	settingsGetCmd = &cobra.Command{
		Use:   "get <key>",
		Short: "Print a single setting value",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, store *settings.Store, args []string) error {
			res, err := store.Read(cmd.Context(), settings.Options{Context: settings.Internal(), Key: args[0]})
			if err != nil {
				return err
			}

			s, _ := res.Get(args[0])
			_, err = fmt.Fprintln(cmd.OutOrStdout(), displayValue(s.Value))

			return err
		}),
	}

	settingsSetCmd = &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a single setting",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: withStore(func(cmd *cobra.Command, store *settings.Store, args []string) error {
			if _, err := store.EditKey(cmd.Context(), args[0], args[1], settings.Options{Context: settings.Internal()}); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])

			return err
		}),
	}
)

// withStore opens the settings stack around fn.
func withStore(fn func(*cobra.Command, *settings.Store, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		core, err := daemon.OpenCore(cmd.Context(), &cfg)
		if err != nil {
			return err
		}

		defer func() {
			_ = core.Close()
		}()

		return fn(cmd, core.Store, args)
	}
}

// displayValue renders derived values as JSON.
func displayValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}

	return string(b)
}
