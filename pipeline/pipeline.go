package pipeline

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/s0up4200/hubspot/hubspot"
)

const (
	ListPath = "/deals/v1/pipelines"
	ItemPath = "/deals/v1/pipelines/:pipeline_id"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Requester is the subset of *hubspot.Connection used by this package.
type Requester interface {
	GetJSON(ctx context.Context, template string, params hubspot.Params) (gjson.Result, error)
}

// Stage is one step of a deal pipeline.
type Stage struct {
	StageID      string  `json:"stageId"`
	Label        string  `json:"label"`
	Probability  float64 `json:"probability"`
	DisplayOrder int     `json:"displayOrder"`
	Active       bool    `json:"active"`
	ClosedWon    bool    `json:"closedWon"`
}

// Pipeline is a deal pipeline and its stages.
type Pipeline struct {
	PipelineID   string  `json:"pipelineId"`
	Label        string  `json:"label"`
	DisplayOrder int     `json:"displayOrder"`
	Active       bool    `json:"active"`
	Stages       []Stage `json:"stages"`
}

// Service reads deal pipelines.
type Service struct {
	client Requester
	logger zerolog.Logger
}

// NewService creates a pipeline service on top of client.
func NewService(client Requester, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// All returns every deal pipeline.
func (s *Service) All(ctx context.Context) ([]Pipeline, error) {
	result, err := s.client.GetJSON(ctx, ListPath, nil)
	if err != nil {
		return nil, err
	}
	if !result.IsArray() {
		return nil, hubspot.NewAPIError("expected a list of pipelines, got %s", result.Type)
	}

	var pipelines []Pipeline
	if err := json.Unmarshal([]byte(result.Raw), &pipelines); err != nil {
		return nil, &hubspot.APIError{Message: "failed to decode pipelines", Err: err}
	}

	s.logger.Debug().Int("count", len(pipelines)).Msg("Retrieved deal pipelines")
	return pipelines, nil
}

// Find returns the pipeline with the given id.
func (s *Service) Find(ctx context.Context, id string) (*Pipeline, error) {
	if id == "" {
		return nil, fmt.Errorf("pipeline id is required")
	}

	result, err := s.client.GetJSON(ctx, ItemPath, hubspot.Params{
		{Key: "pipeline_id", Value: id},
	})
	if err != nil {
		return nil, err
	}
	if !result.IsObject() {
		return nil, hubspot.NewAPIError("unexpected pipeline payload for id %s", id)
	}

	var p Pipeline
	if err := json.Unmarshal([]byte(result.Raw), &p); err != nil {
		return nil, &hubspot.APIError{Message: "failed to decode pipeline", Err: err}
	}
	return &p, nil
}

// Stage returns the stage with the given id, or nil.
func (p *Pipeline) Stage(id string) *Stage {
	for i := range p.Stages {
		if p.Stages[i].StageID == id {
			return &p.Stages[i]
		}
	}
	return nil
}
