package topic

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/s0up4200/hubspot/hubspot"
)

const (
	ListPath = "/blogs/v3/topics"
	ItemPath = "/blogs/v3/topics/:topic_id"
)

// Requester is the subset of *hubspot.Connection used by this package.
type Requester interface {
	GetJSON(ctx context.Context, template string, params hubspot.Params) (gjson.Result, error)
}

// Topic is a blog topic.
type Topic struct {
	ID         int64
	Name       string
	Slug       string
	Properties map[string]any
}

// Get returns a raw property from the payload.
func (t *Topic) Get(property string) any {
	return t.Properties[property]
}

// Service reads blog topics.
type Service struct {
	client Requester
	logger zerolog.Logger
}

// NewService creates a topic service on top of client.
func NewService(client Requester, logger zerolog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// List returns the topics in the "objects" array of the listing.
func (s *Service) List(ctx context.Context) ([]*Topic, error) {
	result, err := s.client.GetJSON(ctx, ListPath, nil)
	if err != nil {
		return nil, err
	}

	objects := result.Get("objects")
	if !objects.IsArray() {
		return nil, hubspot.NewAPIError("topic listing has no objects array")
	}

	items := objects.Array()
	topics := make([]*Topic, 0, len(items))
	for _, item := range items {
		topics = append(topics, decode(item))
	}

	s.logger.Debug().
		Int("count", len(topics)).
		Int64("total", result.Get("total").Int()).
		Msg("Retrieved topics")

	return topics, nil
}

// Find returns the topic with the given id.
func (s *Service) Find(ctx context.Context, id int64) (*Topic, error) {
	result, err := s.client.GetJSON(ctx, ItemPath, hubspot.Params{
		{Key: "topic_id", Value: id},
	})
	if err != nil {
		return nil, err
	}
	if !result.IsObject() {
		return nil, hubspot.NewAPIError("unexpected topic payload for id %d", id)
	}
	return decode(result), nil
}

func decode(item gjson.Result) *Topic {
	props, _ := item.Value().(map[string]any)
	return &Topic{
		ID:         item.Get("id").Int(),
		Name:       item.Get("name").String(),
		Slug:       item.Get("slug").String(),
		Properties: props,
	}
}
