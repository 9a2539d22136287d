package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mbolaris/tankview/pkg/pipeline"
	"github.com/mbolaris/tankview/pkg/tree"
)

// Output formats for the build command.
const (
	formatJSON = "json"
	formatDOT  = "dot"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output  string // output file path (stdout if empty)
	format  string // "json" or "dot"
	noCache bool   // disable the result cache
	refresh bool   // bypass cache reads, rebuild and re-store
}

// buildCommand creates the build command: snapshot in, tree out.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{format: formatJSON}

	cmd := &cobra.Command{
		Use:   "build <records.json>",
		Short: "Build a renderer-ready lineage tree from a snapshot",
		Long: `Build reconciles one snapshot of lineage records into a single-rooted tree.

The snapshot is a JSON array of records as reported by the simulation
backend. Malformed records are dropped with a warning, duplicate ids keep
the latest occurrence, and reproduction cycles are severed, so the command
always produces the largest valid tree the snapshot allows. An empty
snapshot produces the JSON literal null.

Pass "-" to read the snapshot from stdin.

Examples:
  tankview build tank.json                   # Tree JSON to stdout
  tankview build tank.json -o tree.json      # Tree JSON to a file
  tankview build tank.json --format dot      # Graphviz DOT for debugging`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: json or dot")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even when cached")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, path string, opts buildOpts) error {
	if opts.format != formatJSON && opts.format != formatDOT {
		return fmt.Errorf("invalid format: %q (must be json or dot)", opts.format)
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	result, err := c.runSnapshot(cmd, runner, path, opts.refresh)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built tree from %d records", result.Stats.Records))
	reportDegradations(result)

	var out io.Writer = cmd.OutOrStdout()
	var f *os.File
	if opts.output != "" {
		f, err = os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.output, err)
		}
		defer f.Close()
		out = f
	}

	switch opts.format {
	case formatDOT:
		err = tree.WriteDOT(result.Tree, out)
	default:
		err = tree.WriteTree(result.Tree, out)
	}
	if err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Wrote %s tree", opts.format)
		printFile(opts.output)
		printStats(result.Stats.Records, result.Stats.Roots, result.Stats.CyclesSevered, result.CacheInfo.TreeHit)
	}
	return nil
}

// runSnapshot opens the snapshot (or stdin for "-") and runs the pipeline.
func (c *CLI) runSnapshot(cmd *cobra.Command, runner *pipeline.Runner, path string, refresh bool) (*pipeline.Result, error) {
	ctx := cmd.Context()
	src := cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		src = f
	}
	var ttl time.Duration
	if c.Config.Cache.TTLHours > 0 {
		ttl = time.Duration(c.Config.Cache.TTLHours) * time.Hour
	}
	return runner.ExecuteReader(ctx, src, pipeline.Options{
		Refresh: refresh,
		TTL:     ttl,
		Logger:  loggerFromContext(ctx),
	})
}

// reportDegradations warns about input the pipeline had to drop or repair.
// None of these conditions fails the build; the caller still gets the
// largest valid tree.
func reportDegradations(result *pipeline.Result) {
	s := result.Stats
	if s.Malformed > 0 {
		printWarning("Skipped %d records that could not be decoded", s.Malformed)
	}
	if s.Dropped > 0 {
		printWarning("Dropped %d records without a usable id", s.Dropped)
	}
	if s.TrimmedParents > 0 {
		printWarning("Trimmed %d parent entries beyond the two allowed", s.TrimmedParents)
	}
	if s.CyclesSevered > 0 {
		printWarning("Severed %d reproduction cycles reported by the backend", s.CyclesSevered)
	}
}
