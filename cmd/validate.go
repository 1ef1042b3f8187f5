package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/lead-agent/internal/campaign"
)

var validateCampaign string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a campaign file without running the pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateCampaignFile(cmd.OutOrStdout(), validateCampaign)
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateCampaign, "campaign", "", "campaign file (.json, .yaml)")
	_ = validateCmd.MarkFlagRequired("campaign")
	rootCmd.AddCommand(validateCmd)
}

func validateCampaignFile(w io.Writer, path string) error {
	c, err := campaign.LoadFile(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "campaign %q is valid: %d industries, %d channels, urgency %s\n",
		c.CampaignName, len(c.TargetIndustries), len(c.OutreachChannels), c.Urgency)
	return nil
}
