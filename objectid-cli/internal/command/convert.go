package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weiawesome/wes-io-live/pkg/objectid"
)

// newConvertCommand constructs the `convert` subcommand.
func newConvertCommand() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <id>",
		Short: "Re-encode an ObjectID in another text format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := objectid.ParseFormat(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			id, err := objectid.ParseAny(args[0])
			if err != nil {
				return err
			}
			text, err := id.Render(f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVar(&to, "to", "base64", "Output format: hex|base64")
	return cmd
}
