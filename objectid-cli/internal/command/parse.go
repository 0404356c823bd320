package command

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/weiawesome/wes-io-live/pkg/objectid"
)

// Fields is the JSON view printed by `parse`.
type Fields struct {
	Hex         string `json:"hex"`
	Base64      string `json:"base64"`
	TimestampMs int64  `json:"timestamp_ms"`
	Time        string `json:"time"`
	Type        uint8  `json:"type"`
	Salt        uint32 `json:"salt"`
	Counter     uint32 `json:"counter"`
}

// FieldsOf decomposes id.
func FieldsOf(id objectid.ObjectID) Fields {
	return Fields{
		Hex:         id.String(),
		Base64:      id.Base64(),
		TimestampMs: id.TimestampMs(),
		Time:        id.Timestamp().UTC().Format(time.RFC3339Nano),
		Type:        id.Type(),
		Salt:        id.Salt(),
		Counter:     id.Counter(),
	}
}

// newParseCommand constructs the `parse` subcommand.
func newParseCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <id>",
		Short: "Decode an ObjectID and print its fields as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAs(args[0], format)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(FieldsOf(id))
		},
	}
	cmd.Flags().StringVar(&format, "format", "auto", "Input format: auto|hex|base64")
	return cmd
}

func parseAs(s, format string) (objectid.ObjectID, error) {
	switch strings.ToLower(format) {
	case "", "auto":
		return objectid.ParseAny(s)
	default:
		f, err := objectid.ParseFormat(format)
		if err != nil {
			return objectid.Nil, fmt.Errorf("--format: %w", err)
		}
		return objectid.Parse(s, f)
	}
}
