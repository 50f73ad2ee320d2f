package owner

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/hubspot/hubspot"
)

const (
	// ListPath is the collection endpoint.
	ListPath = "/owners/v2/owners"
	// ItemPath addresses a single owner.
	ItemPath = "/owners/v2/owners/:owner_id"

	// DefaultConcurrency bounds parallel lookups in FindByEmails.
	DefaultConcurrency = 5
)

// Requester is the subset of *hubspot.Connection used by this package.
type Requester interface {
	GetJSON(ctx context.Context, template string, params hubspot.Params) (gjson.Result, error)
}

// Owner is a HubSpot user who can own CRM records.
type Owner struct {
	OwnerID    int64
	Email      string
	Properties map[string]any
}

// Get returns a raw property from the payload.
func (o *Owner) Get(property string) any {
	return o.Properties[property]
}

// Service looks up owners.
type Service struct {
	client      Requester
	logger      zerolog.Logger
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithConcurrency sets how many lookups FindByEmails runs at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewService creates an owner service on top of client.
func NewService(client Requester, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		client:      client,
		logger:      logger,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// All returns every owner, optionally including deactivated ones.
func (s *Service) All(ctx context.Context, includeInactive bool) ([]*Owner, error) {
	result, err := s.client.GetJSON(ctx, ListPath, hubspot.Params{
		{Key: "includeInactive", Value: includeInactive},
	})
	if err != nil {
		return nil, err
	}

	owners, err := decodeList(result)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(owners)).
		Bool("include_inactive", includeInactive).
		Msg("Retrieved owners")

	return owners, nil
}

// FindByEmail returns the first owner with email, or nil when none matches.
func (s *Service) FindByEmail(ctx context.Context, email string, includeInactive bool) (*Owner, error) {
	result, err := s.client.GetJSON(ctx, ListPath, hubspot.Params{
		{Key: "email", Value: email},
		{Key: "includeInactive", Value: includeInactive},
	})
	if err != nil {
		return nil, err
	}

	owners, err := decodeList(result)
	if err != nil {
		return nil, err
	}
	if len(owners) == 0 {
		return nil, nil
	}
	return owners[0], nil
}

// FindByEmails looks up each email concurrently. The result keeps the order
// of emails and drops the ones without a match.
func (s *Service) FindByEmails(ctx context.Context, emails []string, includeInactive bool) ([]*Owner, error) {
	found := make([]*Owner, len(emails))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, email := range emails {
		g.Go(func() error {
			o, err := s.FindByEmail(ctx, email, includeInactive)
			if err != nil {
				return err
			}
			found[i] = o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	owners := make([]*Owner, 0, len(found))
	for _, o := range found {
		if o != nil {
			owners = append(owners, o)
		}
	}
	return owners, nil
}

// Find returns the owner with the given id.
func (s *Service) Find(ctx context.Context, id int64) (*Owner, error) {
	result, err := s.client.GetJSON(ctx, ItemPath, hubspot.Params{
		{Key: "owner_id", Value: id},
	})
	if err != nil {
		return nil, err
	}
	if !result.IsObject() {
		return nil, hubspot.NewAPIError("unexpected owner payload for id %d", id)
	}
	return decode(result), nil
}

func decodeList(result gjson.Result) ([]*Owner, error) {
	if !result.Exists() {
		return nil, nil
	}
	if !result.IsArray() {
		return nil, hubspot.NewAPIError("expected a list of owners, got %s", result.Type)
	}

	items := result.Array()
	owners := make([]*Owner, 0, len(items))
	for _, item := range items {
		owners = append(owners, decode(item))
	}
	return owners, nil
}

func decode(item gjson.Result) *Owner {
	props, _ := item.Value().(map[string]any)
	return &Owner{
		OwnerID:    item.Get("ownerId").Int(),
		Email:      item.Get("email").String(),
		Properties: props,
	}
}
