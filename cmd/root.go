package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vitrina",
	Short: "Directory of student ventures with live summary counters",
	Long: `Vitrina serves a directory where students register their ventures.
Visitors browse and filter the listings, and the home page keeps its
summary counters current through a stats endpoint and websocket feed.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".vitrina.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
