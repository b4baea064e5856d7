package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/riskflow/pkg/pipeline"
	"github.com/matzehuels/riskflow/pkg/render/flow"
	"github.com/matzehuels/riskflow/pkg/render/flow/interact"
	"github.com/matzehuels/riskflow/pkg/session"
)

// exploreTTL is how long the explorer remembers a dataset's state.
const exploreTTL = 7 * 24 * time.Hour

// exploreCommand creates the explore command for browsing a dataset in the
// terminal.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		flags diagramFlags
		fresh bool
	)

	cmd := &cobra.Command{
		Use:   "explore [dataset]",
		Short: "Browse a dataset interactively in the terminal",
		Long: `Browse a dataset interactively in the terminal.

Nodes are listed layer by layer and colored by risk band. Moving the cursor
hovers a node and dims everything outside its neighborhood; enter selects it
and shows its incoming and outgoing flows.

The selection is saved on exit and restored the next time the same dataset is
explored. Use --fresh to start from an idle diagram.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input(args)
			if err != nil {
				return err
			}
			opts := flags.options(cmd, c.settings())
			opts.Path = input
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), opts, fresh)
		},
	}

	flags.addDatasetFlags(cmd.Flags())
	flags.addLayoutFlags(cmd.Flags())
	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore the saved selection")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, opts pipeline.Options, fresh bool) error {
	opts.Logger = c.Logger
	ds, err := pipeline.Load(opts)
	if err != nil {
		return err
	}
	for _, w := range ds.Warnings() {
		printWarning("%s", w.Message)
	}
	hash, err := pipeline.DatasetHash(ds)
	if err != nil {
		return err
	}
	base, err := flow.New(ds, opts.Canvas, opts.EngineOptions()...)
	if err != nil {
		return err
	}

	store, err := session.NewFileStore("")
	if err != nil {
		c.Logger.Warn("explorer state disabled", "error", err)
	}
	sess := c.resumeSession(ctx, store, hash, opts, fresh)

	model := NewExploreModel(base.Fork(sess.State))
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("explorer: %w", err)
	}

	if store == nil {
		return nil
	}
	if m, ok := final.(ExploreModel); ok {
		sess.State = m.State()
		sess.Touch(exploreTTL)
		if err := store.Set(context.WithoutCancel(ctx), sess); err != nil {
			c.Logger.Warn("save explorer state", "error", err)
		}
	}
	return nil
}

// resumeSession returns the saved explorer session for the dataset, or a new
// idle one.
func (c *CLI) resumeSession(ctx context.Context, store *session.FileStore, hash string, opts pipeline.Options, fresh bool) *session.Session {
	id := session.ResumeID(hash)
	if store != nil && !fresh {
		sess, err := store.Get(ctx, id)
		if err != nil {
			c.Logger.Warn("load explorer state", "error", err)
		}
		if sess != nil {
			c.Logger.Debug("resumed explorer state", "session", id)
			return sess
		}
	}
	source := opts.Path
	if source == "" {
		source = "sample"
	}
	sess := session.New(source, exploreTTL)
	sess.ID = id
	sess.State = interact.State{}
	return sess
}
