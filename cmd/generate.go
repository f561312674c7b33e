package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/titooo7/enhancedchannelmanager-sub006/internal/ffmpeg"
	"gopkg.in/yaml.v3"
)

// ReadConfig decodes a generator configuration. The format follows the file
// extension: .yaml/.yml, .toml, anything else is JSON.
func ReadConfig(r io.Reader, name string) (ffmpeg.Config, error) {
	var cfg ffmpeg.Config

	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", name, err)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return cfg, nil
}

// WriteResult prints a generation result: the command alone, the command
// followed by an annotation table, or the full result as JSON.
// Warnings go to warnOut so the command can be piped.
func WriteResult(out, warnOut io.Writer, res ffmpeg.Result, annotate, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if _, err := fmt.Fprintln(out, res.Command); err != nil {
		return err
	}

	if annotate {
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw)
		for _, a := range res.Annotations {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Category, a.Flag, a.Explanation)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	for _, w := range res.WarningDetails {
		fmt.Fprintf(warnOut, "warning [%s]: %s\n", w.Rule, w.Message)
	}
	return nil
}

// CreateGenerateCmd creates the generate command.
func CreateGenerateCmd() *cobra.Command {
	var annotate bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate [config-file]",
		Short: "Print the FFmpeg command for a configuration",
		Long: `Reads a generator configuration (JSON, YAML or TOML, chosen by file extension) and prints ` +
			`the FFmpeg command it describes. Reads JSON from stdin when no file is given or the file is "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}

			var in io.Reader = cmd.InOrStdin()
			if name != "-" {
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			cfg, err := ReadConfig(in, name)
			if err != nil {
				return err
			}

			return WriteResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), ffmpeg.Generate(cfg), annotate, asJSON)
		},
	}

	cmd.Flags().BoolVarP(&annotate, "annotate", "a", false, "Print an explanation for every flag")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}
