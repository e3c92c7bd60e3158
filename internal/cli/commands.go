package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/mockid/internal/config"
	"github.com/JonMunkholm/mockid/internal/core"
	"github.com/JonMunkholm/mockid/internal/logging"
)

const (
	defaultRandomCount  = 5
	searchLimit         = 10
	defaultReduceTarget = 100000
)

// app holds state shared by every command.
type app struct {
	out      io.Writer
	dataPath string
	logLevel string

	svc *core.Service
}

// NewRootCommand builds the idcli command tree writing command output to
// out. Logs go to stderr.
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "idcli",
		Short:         "Mock Aadhaar data utilities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(logging.New(os.Stderr, a.logLevel, "text"))
			return nil
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&a.dataPath, "data", "d", "",
		"Path to the dataset snapshot (default $DATASET_PATH or data/mockData.json)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	root.AddCommand(
		a.statsCmd(),
		a.randomCmd(),
		a.searchCmd(),
		a.lookupCmd(),
		a.statesCmd(),
		a.citiesCmd(),
		a.reduceCmd(),
	)
	return root
}

// service loads configuration and the dataset on first use.
func (a *app) service(ctx context.Context) (*core.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if a.dataPath != "" {
		cfg.Dataset.Source = config.SourceFile
		cfg.Dataset.Path = a.dataPath
	}

	records, err := core.LoadSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := core.NewStore(records)
	if err != nil {
		return nil, err
	}
	slog.Info("dataset loaded", "source", cfg.Dataset.Source, "records", store.Size())

	a.svc = core.NewService(store, cfg, nil)
	return a.svc, nil
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dataset statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			st, err := svc.Stats(cmd.Context())
			if err != nil {
				return err
			}
			WriteStats(a.out, st)
			return nil
		},
	}
}

func (a *app) randomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "random [count]",
		Short: fmt.Sprintf("Show random records (default: %d)", defaultRandomCount),
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := defaultRandomCount
			if len(args) == 1 {
				// Unparsable or non-positive counts fall back to the default.
				if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
					count = n
				}
			}

			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			records, err := svc.Sample(cmd.Context(), count)
			if err != nil {
				return err
			}
			WriteSample(a.out, records)
			return nil
		},
	}
}

func (a *app) searchCmd() *cobra.Command {
	var in core.CriteriaInput
	limit := searchLimit

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Search records by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			in.Limit = strconv.Itoa(limit)

			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			records, err := svc.Search(cmd.Context(), in)
			if err != nil {
				return err
			}
			WriteSearch(a.out, args[0], records)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Gender, "gender", "", "Exact gender")
	f.StringVar(&in.State, "state", "", "Exact state")
	f.StringVar(&in.City, "city", "", "Exact city")
	f.StringVar(&in.MinAge, "min-age", "", "Minimum age (inclusive)")
	f.StringVar(&in.MaxAge, "max-age", "", "Maximum age (inclusive)")
	f.IntVar(&limit, "limit", searchLimit, "Maximum number of results")
	return cmd
}

func (a *app) lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <aadhaar>",
		Short: "Lookup specific Aadhaar number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			// Reject malformed ids before loading the dataset.
			if err := core.ValidateID(id); err != nil {
				return err
			}

			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Lookup(cmd.Context(), id)
			if err != nil {
				return err
			}
			return WriteLookup(a.out, id, res)
		},
	}
}

func (a *app) statesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List all available states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			states, err := svc.States(cmd.Context())
			if err != nil {
				return err
			}
			WriteStates(a.out, states)
			return nil
		},
	}
}

func (a *app) citiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List all available cities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			cities, err := svc.Cities(cmd.Context())
			if err != nil {
				return err
			}
			WriteCities(a.out, cities)
			return nil
		},
	}
}

func (a *app) reduceCmd() *cobra.Command {
	var (
		in, out  string
		target   int
		jsModule bool
	)

	cmd := &cobra.Command{
		Use:   "reduce",
		Short: "Write a random subset of a dataset snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if target < 1 {
				return fmt.Errorf("%w: --target must be positive", core.ErrInvalidArgument)
			}
			return Reduce(a.out, in, out, target, jsModule)
		},
	}

	f := cmd.Flags()
	f.StringVar(&in, "in", "", "Source snapshot")
	f.StringVar(&out, "out", "", "Destination snapshot")
	f.IntVar(&target, "target", defaultReduceTarget, "Number of records to keep")
	f.BoolVar(&jsModule, "js-module", false, "Wrap the output as a JavaScript module")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")
	return cmd
}

// Execute runs the command tree and reports errors as user messages.
// Returns the process exit code.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) int {
	root := NewRootCommand(out)
	root.SetArgs(args)
	root.SetErr(errOut)

	if err := root.ExecuteContext(ctx); err != nil {
		if core.IsUserFacing(err) {
			fmt.Fprintln(errOut, core.FormatUserError(err))
		} else {
			fmt.Fprintln(errOut, "Error:", err)
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			fmt.Fprintln(errOut, "Hint: pass the dataset with --data or set DATASET_PATH")
		}
		return 1
	}
	return 0
}
