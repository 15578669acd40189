package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/zjrosen/inkwell/internal/config"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme [preset]",
	Short: "List theme presets or select one",
	Long: `Without an argument, list the built-in theme presets and mark the
active one. With a preset name, write theme.preset to the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listThemes(cmd.OutOrStdout(), cfg.Theme.Preset)
		}
		return setTheme(cmd.OutOrStdout(), cfgPath, args[0])
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func listThemes(w io.Writer, active string) error {
	if active == "" {
		active = "default"
	}
	for _, name := range slices.Sorted(maps.Keys(styles.Presets)) {
		marker := " "
		if name == active {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", marker, name); err != nil {
			return err
		}
	}
	return nil
}

func setTheme(w io.Writer, path, preset string) error {
	if _, ok := styles.Presets[preset]; !ok {
		return fmt.Errorf("unknown theme preset %q", preset)
	}
	if err := config.SaveThemePreset(path, preset); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	_, err := fmt.Fprintf(w, "Theme set to %s in %s\n", preset, path)
	return err
}
