package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/hubspot/pipeline"
)

// pipelinesCmd groups deal pipeline lookups
var pipelinesCmd = &cobra.Command{
	Use:   "pipelines",
	Short: "Read deal pipelines",
}

var pipelinesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List deal pipelines",
	Args:  cobra.NoArgs,
	RunE:  runPipelinesList,
}

var pipelinesGetCmd = &cobra.Command{
	Use:   "get PIPELINE_ID",
	Short: "Show a deal pipeline and its stages",
	Args:  cobra.ExactArgs(1),
	RunE:  runPipelinesGet,
}

func init() {
	rootCmd.AddCommand(pipelinesCmd)
	pipelinesCmd.AddCommand(pipelinesListCmd, pipelinesGetCmd)
}

func newPipelineService() (*pipeline.Service, error) {
	c, err := requireConnection()
	if err != nil {
		return nil, err
	}
	return pipeline.NewService(c, logger), nil
}

func runPipelinesList(cmd *cobra.Command, args []string) error {
	svc, err := newPipelineService()
	if err != nil {
		return err
	}

	pipelines, err := svc.All(cmd.Context())
	if err != nil {
		return err
	}

	t := &table{headers: []string{"ID", "Label", "Order", "Active", "Stages"}}
	for _, p := range pipelines {
		t.rows = append(t.rows, []string{
			p.PipelineID,
			p.Label,
			strconv.Itoa(p.DisplayOrder),
			strconv.FormatBool(p.Active),
			strconv.Itoa(len(p.Stages)),
		})
	}

	return newPrinter(cmd.OutOrStdout()).print(pipelines, t)
}

func runPipelinesGet(cmd *cobra.Command, args []string) error {
	svc, err := newPipelineService()
	if err != nil {
		return err
	}

	p, err := svc.Find(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return newPrinter(cmd.OutOrStdout()).print(p, stageTable(p))
}

func stageTable(p *pipeline.Pipeline) *table {
	t := &table{headers: []string{"Stage", "Label", "Probability", "Order", "Active", "Closed Won"}}
	for _, s := range p.Stages {
		t.rows = append(t.rows, []string{
			s.StageID,
			s.Label,
			fmt.Sprintf("%.0f%%", s.Probability*100),
			strconv.Itoa(s.DisplayOrder),
			strconv.FormatBool(s.Active),
			strconv.FormatBool(s.ClosedWon),
		})
	}
	return t
}
