package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/cache"
	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/config"
	"tableflip.dev/tempo/pkg/daterange"
	"tableflip.dev/tempo/pkg/remote"
	"tableflip.dev/tempo/pkg/runner/load"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "tempo",
		Short: "Effort allocation planning on the command line.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVar(&oo.JSON, "json", false,
		"Output errors as JSON.")
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addPull(topLevel)
	addGet(topLevel)
	addEvents(topLevel)
	addCategories(topLevel)
	addSet(topLevel)
	addRm(topLevel)
	addSpans(topLevel)
	addLanes(topLevel)
	addEval(topLevel)
	addRange(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// env holds the wiring every command shares: the planning service client
// and the on-disk snapshot cache.
type env struct {
	repo  remote.Repository
	cache *cache.Store
}

func environment() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		return nil, err
	}
	return &env{
		repo:  remote.NewClient(cfg.Server),
		cache: store,
	}, nil
}

func (e *env) loader(refresh bool) load.Loader {
	return load.Loader{Repository: e.repo, Cache: e.cache, Refresh: refresh}
}

// selection restores the persisted window, folds any flags over it, and
// persists the result so the window sticks between runs.
func (e *env) selection(so *options.SelectionOptions) (*daterange.Selection, error) {
	sel, err := e.cache.LoadSelection()
	if err != nil {
		return nil, err
	}
	if err := so.Apply(sel); err != nil {
		return nil, err
	}
	if err := e.cache.SaveSelection(sel.State()); err != nil {
		return nil, err
	}
	return sel, nil
}
