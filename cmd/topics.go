package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/hubspot/filter"
	"github.com/s0up4200/hubspot/topic"
)

var topicFilter string

// topicsCmd groups blog topic lookups
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Read blog topics",
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blog topics",
	Args:  cobra.NoArgs,
	RunE:  runTopicsList,
}

var topicsGetCmd = &cobra.Command{
	Use:   "get TOPIC_ID",
	Short: "Show a blog topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicsGet,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
	topicsCmd.AddCommand(topicsListCmd, topicsGetCmd)

	topicsListCmd.Flags().StringVarP(&topicFilter, "filter", "f", "", "filter expression or configured filter name")
}

func newTopicService() (*topic.Service, error) {
	c, err := requireConnection()
	if err != nil {
		return nil, err
	}
	return topic.NewService(c, logger), nil
}

func runTopicsList(cmd *cobra.Command, args []string) error {
	svc, err := newTopicService()
	if err != nil {
		return err
	}

	topics, err := svc.List(cmd.Context())
	if err != nil {
		return err
	}

	records := topicRecords(topics)
	if topicFilter != "" {
		f, err := filter.Compile(cfg.FilterExpression(topicFilter))
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		records = f.Apply(records)
	}

	return newPrinter(cmd.OutOrStdout()).print(records, topicTable(records))
}

func runTopicsGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid topic id %q", args[0])
	}

	svc, err := newTopicService()
	if err != nil {
		return err
	}

	t, err := svc.Find(cmd.Context(), id)
	if err != nil {
		return err
	}

	records := topicRecords([]*topic.Topic{t})
	return newPrinter(cmd.OutOrStdout()).print(t.Properties, topicTable(records))
}

func topicRecords(topics []*topic.Topic) []filter.Record {
	records := make([]filter.Record, 0, len(topics))
	for _, t := range topics {
		if t.Properties == nil {
			records = append(records, filter.Record{"id": t.ID, "name": t.Name, "slug": t.Slug})
			continue
		}
		records = append(records, t.Properties)
	}
	return records
}

func topicTable(records []filter.Record) *table {
	t := &table{headers: []string{"ID", "Name", "Slug"}}
	for _, r := range records {
		t.rows = append(t.rows, []string{field(r, "id"), field(r, "name"), field(r, "slug")})
	}
	return t
}
