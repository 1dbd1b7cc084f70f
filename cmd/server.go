package cmd

import (
	"SongSense/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the SongSense HTTP server",
	Long:  `Start the SongSense HTTP server, serving the search, analysis, favorites and history APIs`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
