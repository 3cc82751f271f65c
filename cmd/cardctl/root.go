package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultServerURL = "http://localhost:8080"

func newRootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CARDCTL")
	v.AutomaticEnv()
	v.SetDefault("server", defaultServerURL)

	ctx := newCommandContext(v)

	rootCmd := &cobra.Command{
		Use:           "cardctl",
		Short:         "Generate and review flashcards from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("server", defaultServerURL, "API server URL (env CARDCTL_SERVER)")
	flags.String("token-file", "", "Where the access token is stored (env CARDCTL_TOKEN_FILE)")
	// BindPFlag only fails for a nil flag.
	_ = v.BindPFlag("server", flags.Lookup("server"))
	_ = v.BindPFlag("token_file", flags.Lookup("token-file"))

	rootCmd.AddCommand(newLoginCommand(ctx))
	rootCmd.AddCommand(newRegisterCommand(ctx))
	rootCmd.AddCommand(newGenerateCommand(ctx))

	return rootCmd
}
