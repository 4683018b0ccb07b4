package cmd

import (
	"github.com/apimon/apimon/cmd/serve"
	"github.com/apimon/apimon/cmd/version"
	"github.com/apimon/apimon/pkg/logger"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands

func NewRootCmd() *cobra.Command {
	logger := logger.NewDefault()
	rootCmd := &cobra.Command{
		Use:   "apimon",
		Short: "An API health monitoring server",
		Long:  `apimon is an HTTP server that periodically checks a target API endpoint and logs the results.`,
	}

	rootCmd.AddCommand(serve.Command(logger))
	rootCmd.AddCommand(version.NewVersionCmd())
	return rootCmd
}
