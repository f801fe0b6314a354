package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/approverhover/internal/domain/model"
)

func newWhoCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "who FILE LINE",
		Short: "Print who approved the change that last touched LINE (1-based) of FILE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid line %q: %w", args[1], err)
			}

			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if root == "" {
				root = cfg.Workspace
			}

			query, err := buildWhoQuery(root, args[0], line)
			if err != nil {
				return err
			}

			svc, _, err := newResolveService(cfg, logger)
			if err != nil {
				return err
			}

			result := svc.Resolve(cmd.Context(), query)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Message())
			return err
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Repository root (default from APPROVERHOVER_WORKSPACE or the current directory)")
	return cmd
}

// buildWhoQuery resolves root and file to absolute paths; a relative file is
// taken relative to the current directory, as a shell user expects.
func buildWhoQuery(root, file string, line int) (model.LineQuery, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return model.LineQuery{}, err
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		return model.LineQuery{}, err
	}
	return model.NewLineQueryOneBased(absRoot, absFile, line)
}
