package command

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pkgconfig "github.com/weiawesome/wes-io-live/pkg/config"
	pkglog "github.com/weiawesome/wes-io-live/pkg/log"
	"github.com/weiawesome/wes-io-live/pkg/objectid"
	pb "github.com/weiawesome/wes-io-live/proto/id"
)

const remoteTimeout = 5 * time.Second

type generateOptions struct {
	typ      int
	format   string
	count    int
	truncate bool
	server   string
}

// newGenerateCommand constructs the `generate` subcommand.
func newGenerateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate ObjectIDs, one per line",
		Long: `Generate ObjectIDs locally, or ask a running id-service when --server
(or OBJECTID_GRPC) names its gRPC address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.count < 1 || opts.count > objectid.MaxBatch {
				return fmt.Errorf("%w: --count must be between 1 and %d", objectid.ErrInvalidBatchSize, objectid.MaxBatch)
			}
			if opts.server != "" {
				if opts.truncate {
					return fmt.Errorf("--truncate is a local option; the server uses its own timestamp policy")
				}
				return generateRemote(cmd.Context(), cmd.OutOrStdout(), opts)
			}
			return generateLocal(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.typ, "type", 0, "Type tag (0-255)")
	cmd.Flags().StringVar(&opts.format, "format", "hex", "Text format: hex|base64")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 1, "Number of ids to generate")
	cmd.Flags().BoolVar(&opts.truncate, "truncate", false, "Keep the low 48 bits of out-of-range clocks instead of failing")
	cmd.Flags().StringVar(&opts.server, "server", pkgconfig.GetEnv(EnvServer, ""), "id-service gRPC address (host:port)")
	return cmd
}

func generateLocal(w io.Writer, opts generateOptions) error {
	format, err := objectid.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	policy := objectid.TimestampStrict
	if opts.truncate {
		policy = objectid.TimestampTruncate
	}

	gen := objectid.NewGenerator(
		objectid.WithState(objectid.Default().State()),
		objectid.WithTimestampPolicy(policy),
	)
	ids, err := gen.GenerateBatch(opts.typ, opts.count)
	if err != nil {
		return err
	}

	l := pkglog.L()
	l.Debug().
		Int(pkglog.FieldIDType, opts.typ).
		Int(pkglog.FieldCount, len(ids)).
		Str(pkglog.FieldPolicy, policy.String()).
		Msg("generated locally")

	for _, id := range ids {
		text, err := id.Render(format)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

func generateRemote(ctx context.Context, w io.Writer, opts generateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	conn, err := grpc.NewClient(opts.server, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", opts.server, err)
	}
	defer conn.Close()

	reqID := pkglog.NewRequestID()
	ctx = pkglog.OutgoingRequestID(ctx, reqID)
	l := pkglog.L()
	l.Debug().Str(pkglog.FieldRequestID, reqID).Str("server", opts.server).Msg("requesting ids")

	typ := opts.typ
	req := pb.GenerateRequest{
		Kind:   "objectid",
		Type:   &typ,
		Format: opts.format,
		Count:  opts.count,
	}
	resp, err := pb.NewIDServiceClient(conn).GenerateBatchIDs(ctx, req.ToStruct())
	if err != nil {
		return fmt.Errorf("generate on %s: %w", opts.server, err)
	}
	ids, err := pb.Strings(resp, pb.FieldIDs)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}
