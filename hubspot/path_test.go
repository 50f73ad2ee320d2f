package hubspot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name          string
		template      string
		params        Params
		wantPath      string
		wantRemaining Params
	}{
		{
			name:          "no placeholders",
			template:      "/owners/v2/owners",
			params:        Params{{Key: "includeInactive", Value: true}},
			wantPath:      "/owners/v2/owners",
			wantRemaining: Params{{Key: "includeInactive", Value: true}},
		},
		{
			name:          "placeholder consumed",
			template:      "/owners/v2/owners/:owner_id",
			params:        Params{{Key: "owner_id", Value: 42}},
			wantPath:      "/owners/v2/owners/42",
			wantRemaining: Params{},
		},
		{
			name:     "prefix names do not collide",
			template: "/x/:owner/:owner_id",
			params: Params{
				{Key: "owner_id", Value: "b"},
				{Key: "owner", Value: "a"},
			},
			wantPath:      "/x/a/b",
			wantRemaining: Params{},
		},
		{
			name:          "value is escaped",
			template:      "/contacts/v1/contact/email/:email/profile",
			params:        Params{{Key: "email", Value: "a b:c@example.com"}},
			wantPath:      "/contacts/v1/contact/email/a+b%3Ac%40example.com/profile",
			wantRemaining: Params{},
		},
		{
			name:     "every entry under a consumed key is dropped",
			template: "/deals/v1/pipelines/:pipeline_id",
			params: Params{
				{Key: "pipeline_id", Value: "default"},
				{Key: "limit", Value: 1},
				{Key: "pipeline_id", Value: "other"},
			},
			wantPath:      "/deals/v1/pipelines/default",
			wantRemaining: Params{{Key: "limit", Value: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, remaining, err := ResolvePath(tt.template, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantRemaining, remaining)
		})
	}
}

func TestResolvePathMissingInterpolation(t *testing.T) {
	_, _, err := ResolvePath("/owners/v2/owners/:owner_id", Params{{Key: "owner", Value: 1}})
	require.Error(t, err)
	assert.True(t, IsMissingInterpolation(err))

	var missing *MissingInterpolationError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "/owners/v2/owners/:owner_id", missing.Path)
}

func TestResolvePathRejectsCompositeValues(t *testing.T) {
	_, _, err := ResolvePath("/x/:id", Params{{Key: "id", Value: []int{1, 2}}})
	assert.True(t, IsInvalidParameter(err))

	_, _, err = ResolvePath("/x/:id", Params{{Key: "id", Value: NewRange(1, 2)}})
	assert.True(t, IsInvalidParameter(err))
}

func TestResolvePathDoesNotMutate(t *testing.T) {
	params := Params{{Key: "owner_id", Value: 1}, {Key: "a", Value: 2}}
	snapshot := params.Clone()

	_, _, err := ResolvePath("/owners/v2/owners/:owner_id", params)
	require.NoError(t, err)
	assert.Equal(t, snapshot, params)
}

func TestHasPlaceholder(t *testing.T) {
	assert.True(t, hasPlaceholder("/a/:portal_id/b", PortalIDParam))
	assert.False(t, hasPlaceholder("/a/:portal_id_x", PortalIDParam))
	assert.False(t, hasPlaceholder("/a/b", PortalIDParam))
}
