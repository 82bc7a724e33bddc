package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stemsi/marking-day/internal/logger"
	"github.com/stemsi/marking-day/internal/model"
	"github.com/stemsi/marking-day/internal/roster"
	"github.com/stemsi/marking-day/internal/service"
	"github.com/stemsi/marking-day/internal/simulation"
)

// maxClassSize matches the range offered by the classroom UI.
const maxClassSize = 20

type playOptions struct {
	size  int
	order model.SortOrder
}

func newPlayCmd() *cobra.Command {
	var (
		size       int
		orderFlag  string
		seed       uint64
		rosterPath string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play Bubble Sort on a random class",
		Long: `Generate a class and decide each comparison from the keyboard:

  s  swap          d  don't swap     f  finish now
  n  new class     q  quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			order, ok := model.ParseSortOrder(orderFlag)
			if !ok {
				return fmt.Errorf("--order must be ascending or descending, got %q", orderFlag)
			}

			var grades simulation.GradeSource = simulation.NewRandomGrades(seed)
			if rosterPath != "" {
				preset, err := roster.Load(rosterPath)
				if err != nil {
					return err
				}
				if !cmd.Flags().Changed("order") {
					order = preset.Order(order)
				}
				if !cmd.Flags().Changed("size") {
					size = len(preset.Grades)
				}
				grades = preset.Source(grades)
			}

			level, _ := cmd.Flags().GetString("log-level")
			log := logger.New(cmd.ErrOrStderr(), level, "pretty")
			svc := service.NewSimulationService(simulation.NewEngine(grades), nil, maxClassSize, log)

			keys, restore, err := openKeys(os.Stdin)
			if err != nil {
				return err
			}
			defer restore()

			out := cmd.OutOrStdout()
			if keys.raw {
				out = crlfWriter{w: out}
			}
			return runPlay(keys, out, svc.NewSession(), playOptions{size: size, order: order})
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", simulation.DefaultClassSize, "Class size (2-20)")
	cmd.Flags().StringVarP(&orderFlag, "order", "o", string(model.DefaultSortOrder), "Sort order: ascending or descending")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible grades (0 = random)")
	cmd.Flags().StringVar(&rosterPath, "roster", "", "YAML roster file with preset grades")
	return cmd
}

// runPlay drives one session until the user quits or input ends.
func runPlay(keys keySource, out io.Writer, session *service.Session, opts playOptions) error {
	render(out, opts.order, session.Start(opts.size, opts.order))

	for {
		key, err := keys.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}

		var view model.View
		switch key {
		case 's':
			view = session.Step(model.DecisionSwap)
		case 'd':
			view = session.Step(model.DecisionDontSwap)
		case 'f':
			view = session.Finish()
		case 'n':
			view = session.Start(opts.size, opts.order)
		case 'q', ctrlC:
			fmt.Fprintln(out, "Bye.")
			return nil
		default:
			continue
		}
		render(out, opts.order, view)
	}
}

func render(out io.Writer, order model.SortOrder, view model.View) {
	var b strings.Builder
	fmt.Fprintf(&b, "\nClass list (%s)\n%s\n", order.Label(), view.RosterText)
	if view.ComparisonText != "" {
		fmt.Fprintf(&b, "\nCurrent comparison\n%s\n", view.ComparisonText)
	}
	fmt.Fprintf(&b, "\n%s\n", view.StatusText)
	b.WriteString("\n[s] Swap  [d] Don't swap  [f] Finish now  [n] New class  [q] Quit\n")
	io.WriteString(out, b.String())
}
