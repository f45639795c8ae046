package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/whotakesshowers/wts/internal/roster"
	"github.com/whotakesshowers/wts/internal/spin"
)

var spinCmd = &cobra.Command{
	Use:   "spin <project-id>",
	Short: "Spin for a project",
	Long:  "Spin for a project. Opens the spin screen directly, or with --plain prints the spin to stdout without a UI.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wheel, _ := cmd.Flags().GetBool("wheel")
		plain, _ := cmd.Flags().GetBool("plain")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if wheel {
			e.cfg.Spin = e.cfg.Spin.WithVariant("wheel")
		}
		if !plain {
			return runTUI(e, args[0])
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return runPlain(ctx, e, args[0], cmd.OutOrStdout())
	},
}

func init() {
	spinCmd.Flags().Bool("wheel", false, "Use the wheel animation instead of the name cycle")
	spinCmd.Flags().Bool("plain", false, "Print the spin to stdout instead of opening the UI")
}

// runPlain drives a spin with the goroutine Controller and prints each
// newly highlighted candidate.
func runPlain(ctx context.Context, e *env, projectID string, out io.Writer) error {
	project, snap, err := e.client.ProjectRoster(ctx, projectID)
	if err != nil {
		return fmt.Errorf("load project %s: %w", projectID, err)
	}
	if snap.Empty() {
		return fmt.Errorf("project %q: %w", project.Name, spin.ErrNoCandidates)
	}

	fmt.Fprintf(out, "%s: spinning over %d %s\n", project.Name, snap.Len(), e.cfg.Display.CandidateTerm)

	var winner *roster.Candidate
	var failure error
	ctrl := spin.NewController(spin.FromConfig(e.cfg.Spin), e.resolver,
		spin.WithLogger(e.logger),
		spin.WithFrameHook(framePrinter(out, snap)),
	)
	defer ctrl.Close()

	_, err = ctrl.Start(ctx, spin.Request{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Roster:      snap,
		OnComplete:  func(c roster.Candidate) { winner = &c },
		OnError:     func(err error) { failure = err },
	})
	if err != nil {
		return err
	}
	ctrl.Wait()

	switch {
	case winner != nil:
		fmt.Fprintf(out, "\n🎉 %s\n", winner.Name)
		return nil
	case failure != nil:
		var ce *spin.ConsistencyError
		if errors.As(failure, &ce) {
			return fmt.Errorf("the roster changed while spinning, reload and try again: %w", failure)
		}
		return fmt.Errorf("spin failed: %w", failure)
	}
	return ctx.Err()
}

// framePrinter returns a frame hook that prints a line each time the
// highlighted candidate changes.
func framePrinter(out io.Writer, snap roster.Snapshot) func(spin.Frame) {
	last := -1
	return func(f spin.Frame) {
		if f.Index < 0 || f.Index == last || f.Phase == spin.Landed {
			return
		}
		last = f.Index
		marker := "·"
		if f.Phase == spin.Settling {
			marker = "»"
		}
		fmt.Fprintf(out, "  %s %s\n", marker, snap.At(f.Index).Name)
	}
}
