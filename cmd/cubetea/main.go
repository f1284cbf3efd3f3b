package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "cubetea",
		Short:         "Edit and render box/sphere scenes",
		Long:          `cubetea edits scenes of boxes and spheres seen through an orthographic camera, and renders them as wireframes or raytraced images.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "editor preferences file")
	rootCmd.PersistentFlags().StringVar(&opts.envPath, "env", ".env", "environment file (missing is fine)")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not log to stderr or the log file")

	rootCmd.AddCommand(newCmd, renderCmd, execCmd, viewCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
