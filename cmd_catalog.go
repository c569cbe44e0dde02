package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"ringback/backend/industry"
	"ringback/backend/setup"
)

var (
	outputFormat  string
	areas         []string
	customScript  bool
	multiLocation bool
	industryFlag  string
)

var industriesCmd = &cobra.Command{
	Use:   "industries",
	Short: "Print the supported industry catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeCatalog(cmd.OutOrStdout(), outputFormat)
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Check whether a setup would need manual provisioning",
	Example: `  ringback classify --industry HVAC --areas Austin,Round\ Rock
  ringback classify --custom-script -o json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		d := setup.Draft{
			Industry:      industry.Resolve(industryFlag),
			ServiceAreas:  areas,
			CustomScript:  customScript,
			MultiLocation: multiLocation,
		}
		return writeVerdict(cmd.OutOrStdout(), outputFormat, setup.Classify(d))
	},
}

func init() {
	for _, c := range []*cobra.Command{industriesCmd, classifyCmd} {
		c.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json or yaml")
	}
	classifyCmd.Flags().StringSliceVar(&areas, "areas", nil, "service areas, comma separated")
	classifyCmd.Flags().BoolVar(&customScript, "custom-script", false, "business wants a custom greeting script")
	classifyCmd.Flags().BoolVar(&multiLocation, "multi-location", false, "business operates several locations")
	classifyCmd.Flags().StringVar(&industryFlag, "industry", string(industry.Generic), "industry code")
}

func encode(w io.Writer, format string, v interface{}) (bool, error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return true, enc.Encode(v)
	case "table", "":
		return false, nil
	}
	return true, fmt.Errorf("unknown output format %q", format)
}

func writeCatalog(w io.Writer, format string) error {
	entries := industry.List()
	if done, err := encode(w, format, entries); done {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tLABEL\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Code, e.Label, e.Description)
	}
	return tw.Flush()
}

func writeVerdict(w io.Writer, format string, v setup.Verdict) error {
	out := struct {
		Manual bool         `json:"requires_manual_setup" yaml:"requires_manual_setup"`
		Reason setup.Reason `json:"reason" yaml:"reason"`
	}{v.Manual, v.Reason}
	if done, err := encode(w, format, out); done {
		return err
	}
	mode := "automatic"
	if v.Manual {
		mode = "manual"
	}
	_, err := fmt.Fprintf(w, "%s (%s)\n", mode, v.Reason)
	return err
}
