package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lead-agent/internal/campaign"
	"github.com/sells-group/lead-agent/internal/export"
	"github.com/sells-group/lead-agent/internal/model"
)

const formatJSON = "json"

var (
	prioritizeCampaign string
	prioritizeFormat   string
	prioritizeOutput   string
)

var prioritizeCmd = &cobra.Command{
	Use:   "prioritize",
	Short: "Rank the catalog for one campaign file",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(prioritizeFormat)
		if err := checkOutputFormat(format, prioritizeOutput); err != nil {
			return err
		}

		c, err := campaign.LoadFile(prioritizeCampaign)
		if err != nil {
			return err
		}

		env, err := initPipeline(cmd.Context(), "prioritize")
		if err != nil {
			return err
		}

		result, err := env.Pipeline.Run(c)
		if err != nil {
			return err
		}

		if prioritizeOutput == "" {
			return writeResult(cmd.OutOrStdout(), format, result)
		}
		if err := writeResultFile(prioritizeOutput, format, result); err != nil {
			return err
		}
		zap.L().Info("prioritize: wrote result",
			zap.String("campaign", c.CampaignName),
			zap.String("output", prioritizeOutput),
			zap.Int("leads", len(result.Leads)),
		)
		return nil
	},
}

func init() {
	prioritizeCmd.Flags().StringVar(&prioritizeCampaign, "campaign", "", "campaign file (.json, .yaml)")
	prioritizeCmd.Flags().StringVar(&prioritizeFormat, "format", formatJSON, "output format: json, csv or xlsx")
	prioritizeCmd.Flags().StringVar(&prioritizeOutput, "output", "", "output file (default stdout)")
	_ = prioritizeCmd.MarkFlagRequired("campaign")
	rootCmd.AddCommand(prioritizeCmd)
}

// checkOutputFormat rejects unknown formats and binary output to stdout.
func checkOutputFormat(format, output string) error {
	switch format {
	case formatJSON, export.FormatCSV:
		return nil
	case export.FormatXLSX:
		if output == "" {
			return eris.New("prioritize: --output is required for xlsx")
		}
		return nil
	default:
		return eris.Errorf("prioritize: unsupported format %q", format)
	}
}

// writeResult renders a result as indented JSON, or as an export of the
// ranked leads for csv and xlsx.
func writeResult(w io.Writer, format string, result *model.Result) error {
	if format != formatJSON {
		return export.Write(w, format, result.Leads)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(result), "prioritize: encode result")
}

func writeResultFile(path, format string, result *model.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "prioritize: create %s", path)
	}
	if err := writeResult(f, format, result); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrapf(f.Close(), "prioritize: close %s", path)
}
