package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kerbaras/guya/pkg/preferences"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show reading preferences",
	Long: `Show or change the reading preferences.

Keys:
  preferred_group   group identifier, empty for none
  layout_direction  ltr, rtl or ttb
  scaling_mode      width, height, proportionally or original`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c := mustController()
		defer closeController(c)

		for _, key := range preferences.Keys {
			value, err := c.Prefs.Get(key)
			cobra.CheckErr(err)
			if value == "" {
				value = "(none)"
			}
			fmt.Printf("%-18s %s\n", key, value)
		}
	},
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one preference",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := mustController()
		defer closeController(c)

		value, err := c.Prefs.Get(preferences.Key(args[0]))
		cobra.CheckErr(err)
		fmt.Println(value)
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		c := mustController()
		defer closeController(c)

		key := preferences.Key(args[0])
		cobra.CheckErr(c.Prefs.Set(key, args[1]))

		value, err := c.Prefs.Get(key)
		cobra.CheckErr(err)
		fmt.Printf("✅ %s = %s\n", key, value)
	},
}

func init() {
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}
