package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	config string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Illustration gallery server and tools",
		Long: `Gallery serves a browsable, infinitely scrolling collection of
illustrations kept in object storage, together with the paginated listing API
that feeds it.`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			_ = godotenv.Load()
		},
	}
	cmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "path to config.yml")

	cmd.AddCommand(newServeCmd(flags), newBrowseCmd(flags), newResolveCmd(flags))
	return cmd
}
