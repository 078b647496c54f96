// Package commands defines the cobra command tree for the API server.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/realestatehub/backend/utils"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "realestatehub",
		Short:         "Real estate listing marketplace API",
		Long:          "REST backend for a real-estate listing marketplace: accounts, property listings, booking inquiries, reviews and site settings.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				utils.Logger.Debugf("No .env file loaded: %v", err)
			}
			utils.InitLogger("real-estate-hub")
		},
	}

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
	)

	return root
}
