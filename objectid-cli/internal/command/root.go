// Package command contains the Cobra commands of the objectid CLI.
package command

import (
	"github.com/spf13/cobra"

	pkgconfig "github.com/weiawesome/wes-io-live/pkg/config"
	pkglog "github.com/weiawesome/wes-io-live/pkg/log"
)

// EnvServer names the id-service gRPC address used by generate --server.
const EnvServer = "OBJECTID_GRPC"

// NewRoot constructs the root command and registers every subcommand.
func NewRoot() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "objectid",
		Short:         "Generate and inspect 14-byte ObjectIDs",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			pkglog.Init(pkglog.Config{
				Level:       logLevel,
				Pretty:      true,
				ServiceName: "objectid-cli",
				Output:      cmd.ErrOrStderr(),
			})
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", pkgconfig.GetEnv("OBJECTID_LOG_LEVEL", "warn"), "Log level: debug|info|warn|error")

	root.AddCommand(
		newGenerateCommand(),
		newParseCommand(),
		newConvertCommand(),
	)
	return root
}
