// Command bonesview opens a window and plays a procedurally built armature,
// with optional debug draw and live config reload.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/bones"
)

// Global flag values.
var (
	flagConfig    string
	flagWidth     int
	flagHeight    int
	flagDebug     bool
	flagShowFPS   bool
	flagTimeScale float64
	flagAnimation string
)

var rootCmd = &cobra.Command{
	Use:     "bonesview",
	Short:   "Bonesview plays a skeletal armature in a window",
	Version: bones.Version,
	Long: `Bonesview builds the demo "snake" armature, binds a generated atlas,
and plays one of its animations. Pass --config to load a YAML config; the
file is watched and changes apply while the window is open.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file to load and watch")

	rootCmd.Flags().IntVar(&flagWidth, "width", 800, "window width")
	rootCmd.Flags().IntVar(&flagHeight, "height", 480, "window height")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "draw bones and bounding boxes")
	rootCmd.Flags().BoolVar(&flagShowFPS, "show-fps", false, "print FPS and TPS")
	rootCmd.Flags().Float64Var(&flagTimeScale, "time-scale", 0, "clock time scale (0 keeps the config value)")
	rootCmd.Flags().StringVar(&flagAnimation, "animation", "wave", "animation to play")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
