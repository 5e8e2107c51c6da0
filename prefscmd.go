package main

import (
	"fmt"

	"github.com/dylan/dynparam/param"
	"github.com/dylan/dynparam/prefs"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect and edit remembered values",
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <owner> <key>",
	Short: "Print a stored value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(b prefs.Backend) error {
			v, ok, err := b.Get(args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s: no value for %q", args[0], args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		})
	},
}

var prefsPutCmd = &cobra.Command{
	Use:   "put <owner> <key> <value>",
	Short: "Store a value",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(b prefs.Backend) error {
			return b.Put(args[0], args[1], args[2])
		})
	},
}

var prefsListCmd = &cobra.Command{
	Use:   "list <owner>",
	Short: "List the keys stored for owner (sqlite store only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(func(b prefs.Backend) error {
			if c, ok := b.(*prefs.Cached); ok {
				b = c.Unwrap()
			}
			lister, ok := b.(interface {
				Keys(owner string) ([]string, error)
			})
			if !ok {
				return fmt.Errorf("store backend %q cannot list keys", cfg.ResolvedStore().Backend)
			}
			keys, err := lister.Keys(args[0])
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		})
	},
}

var prefsEnableCmd = &cobra.Command{
	Use:   "enable <plugin>",
	Short: "Offer a plugin in plugin choices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPlugin(args[0], true)
	},
}

var prefsDisableCmd = &cobra.Command{
	Use:   "disable <plugin>",
	Short: "Hide a plugin from plugin choices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPlugin(args[0], false)
	},
}

func init() {
	prefsCmd.AddCommand(prefsGetCmd, prefsPutCmd, prefsListCmd, prefsEnableCmd, prefsDisableCmd)
}

func withBackend(fn func(prefs.Backend) error) error {
	b, closer, err := openBackend(cfg.ResolvedStore())
	if err != nil {
		return err
	}
	defer closer.Close()
	return fn(b)
}

func setPlugin(name string, enabled bool) error {
	return withBackend(func(b prefs.Backend) error {
		return param.SetPluginEnabled(prefs.New(b), name, enabled)
	})
}
