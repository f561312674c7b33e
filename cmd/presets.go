package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/presets"
)

func openPresets(path string) (presets.Service, error) {
	return presets.NewService(presets.Options{
		Store:  presets.NewTOML(path),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// CreatePresetsCmd creates the presets command with its list, show,
// export and import subcommands.
func CreatePresetsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage stored FFmpeg presets",
	}
	cmd.PersistentFlags().StringVarP(&file, "presets-file", "f", presets.DefaultPath, "Presets file")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List built-in and stored presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := openPresets(file)
			if err != nil {
				return err
			}
			list, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tNAME\tSYSTEM")
			for _, p := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", p.ID, p.Kind, p.Name, p.System)
			}
			return tw.Flush()
		},
	})

	var annotate bool
	show := &cobra.Command{
		Use:   "show <preset-id>",
		Short: "Print the FFmpeg command a preset describes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openPresets(file)
			if err != nil {
				return err
			}
			res, err := svc.Preview(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return WriteResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), *res, annotate, false)
		},
	}
	show.Flags().BoolVarP(&annotate, "annotate", "a", false, "Print an explanation for every flag")
	cmd.AddCommand(show)

	var output string
	export := &cobra.Command{
		Use:   "export <preset-id>",
		Short: "Write a preset as a YAML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openPresets(file)
			if err != nil {
				return err
			}
			p, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return presets.ExportYAML(cmd.OutOrStdout(), *p)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := presets.ExportYAML(f, *p); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	export.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.AddCommand(export)

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Store a preset from a YAML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openPresets(file)
			if err != nil {
				return err
			}
			p, err := importFile(cmd.Context(), svc, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s %q as %s\n", p.Kind, p.Name, p.ID)
			return nil
		},
	})

	return cmd
}

func importFile(ctx context.Context, svc presets.Service, path string) (*presets.Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	params, err := presets.ImportYAML(f)
	if err != nil {
		return nil, err
	}
	return svc.Create(ctx, params)
}
