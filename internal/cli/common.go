package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/danieljhkim/chunkplan/internal/config"
	"github.com/danieljhkim/chunkplan/internal/hash"
	"github.com/danieljhkim/chunkplan/internal/planner"
	"github.com/danieljhkim/chunkplan/internal/source"
)

// newRunner creates the command runner used by the plan source.
// Tests replace it with a fake.
var newRunner = func() source.Runner {
	return source.NewExecRunner()
}

// planOptions holds the flags shared by plan and show.
type planOptions struct {
	coreSplit int
	input     string
	arch      string
}

// addPlanFlags registers the planning flags on fs.
func addPlanFlags(fs *pflag.FlagSet, opts *planOptions) {
	fs.IntVar(&opts.coreSplit, "core-split", planner.DefaultCoreSplit, "Number of pending elements in the core group")
	fs.StringVarP(&opts.input, "input", "i", "", "Read plan lines from a file (\"-\" for stdin) instead of running the source command")
	fs.StringVar(&opts.arch, "arch", config.DefaultArch, "Architecture passed to the source command as \"-o arch <arch>\" (empty to omit)")
}

// newLogger creates a logger writing human-readable entries to w.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// loadConfig resolves and loads the config file, then applies the
// command-line arguments that were explicitly given.
func loadConfig(cmd *cobra.Command, global *globalOptions, opts *planOptions, args []string) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	path, err := config.ResolvePath(global.configPath, cwd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("core-split") {
		cfg.CoreSplit = opts.coreSplit
	}
	if cmd.Flags().Changed("arch") {
		cfg.Source.Arch = opts.arch
	}
	if len(args) > 1 {
		n, err := config.ParseChunkCount(args[1])
		if err != nil {
			return nil, err
		}
		cfg.NumChunks = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildPlan loads the plan for the target in args[0] and partitions it.
func buildPlan(ctx context.Context, cmd *cobra.Command, global *globalOptions, opts *planOptions, args []string) (*planner.Result, error) {
	target := args[0]

	cfg, err := loadConfig(cmd, global, opts, args)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), global.verbose)
	defer func() {
		_ = logger.Sync()
	}()

	var src source.Source
	if opts.input != "" {
		src = source.NewFileSource(opts.input, cmd.InOrStdin())
	} else {
		src = source.NewCommandSource(newRunner(), cfg.Source.Argv(), cfg.Source.Dir)
	}

	elems, err := source.Load(ctx, src, target, logger)
	if err != nil {
		return nil, err
	}

	p := planner.New(
		hash.NewSHA256Hasher(),
		planner.WithCachedState(cfg.CachedState),
		planner.WithExtensions(cfg.StripExtensions),
	)
	result := p.Partition(planner.Request{
		Elements:  elems,
		CoreSplit: cfg.CoreSplit,
		NumChunks: cfg.NumChunks,
		Target:    target,
	})

	logger.Info(fmt.Sprintf("Found %d elements to build", result.Stats.Total-result.Stats.Cached),
		zap.String("target", target))
	logger.Debug("Plan partitioned",
		zap.String("target", target),
		zap.Int("elements", result.Stats.Total),
		zap.Int("cached", result.Stats.Cached),
		zap.Int("core", result.Stats.Core),
		zap.Int("leaf", result.Stats.Leaf),
		zap.Int("chunks", result.Stats.Chunks))

	return result, nil
}
