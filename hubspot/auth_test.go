package hubspot

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreflight(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		template   string
		opts       BuildOptions
		wantErrKey string
		wantMode   AuthMode
		wantAPIKey string
		wantPortal string
	}{
		{
			name:       "api key attached",
			cfg:        Config{APIKey: "demo"},
			template:   "/owners/v2/owners",
			wantMode:   AuthAPIKey,
			wantAPIKey: "demo",
		},
		{
			name:       "api key required even when disabled",
			cfg:        Config{},
			template:   "/owners/v2/owners",
			opts:       BuildOptions{DisableAPIKeyAuth: true},
			wantErrKey: APIKeyParam,
		},
		{
			name:     "api key disabled",
			cfg:      Config{APIKey: "demo"},
			template: "/uploads/form/v2/:form_guid",
			opts:     BuildOptions{DisableAPIKeyAuth: true},
			wantMode: AuthAPIKey,
		},
		{
			name:     "oauth2 with token",
			cfg:      Config{UseOAuth2: true, OAuth2Token: "T"},
			template: "/owners/v2/owners",
			wantMode: AuthOAuth2,
		},
		{
			name:       "oauth2 without token",
			cfg:        Config{UseOAuth2: true},
			template:   "/owners/v2/owners",
			wantErrKey: "oauth2",
		},
		{
			name:       "oauth2 with api key present",
			cfg:        Config{UseOAuth2: true, OAuth2Token: "T", APIKey: "demo"},
			template:   "/owners/v2/owners",
			wantErrKey: "oauth2",
		},
		{
			name:       "portal id required",
			cfg:        Config{APIKey: "demo"},
			template:   "/uploads/form/v2/:portal_id/:form_guid",
			wantErrKey: PortalIDParam,
		},
		{
			name:       "portal id injected",
			cfg:        Config{APIKey: "demo", PortalID: "62515"},
			template:   "/uploads/form/v2/:portal_id/:form_guid",
			wantMode:   AuthAPIKey,
			wantAPIKey: "demo",
			wantPortal: "62515",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := preflight(tt.cfg, tt.template, tt.opts)
			if tt.wantErrKey != "" {
				require.Error(t, err)
				var cfgErr *ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, tt.wantErrKey, cfgErr.Key)
				assert.Equal(t, KindConfiguration, KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, plan.mode)
			assert.Equal(t, tt.wantAPIKey, plan.apiKey)
			assert.Equal(t, tt.wantPortal, plan.portalID)
		})
	}
}

func TestAuthPlanParamsOrder(t *testing.T) {
	plan := authPlan{mode: AuthAPIKey, apiKey: "demo", portalID: "1"}

	got := plan.params(Params{
		{Key: "limit", Value: 5},
		{Key: PortalIDParam, Value: "caller"},
		{Key: APIKeyParam, Value: "caller"},
	})

	assert.Equal(t, Params{
		{Key: APIKeyParam, Value: "demo"},
		{Key: PortalIDParam, Value: "1"},
		{Key: "limit", Value: 5},
	}, got)
}

func TestAuthPlanBearerHeader(t *testing.T) {
	plan, err := preflight(Config{UseOAuth2: true, OAuth2Token: "T"}, "/x", BuildOptions{})
	require.NoError(t, err)

	h := make(http.Header)
	plan.applyHeaders(h)
	assert.Equal(t, "Bearer T", h.Get("Authorization"))
	assert.Empty(t, plan.apiKey)
}

func TestConfigAuthMode(t *testing.T) {
	assert.Equal(t, AuthUnconfigured, Config{}.AuthMode())
	assert.Equal(t, AuthAPIKey, Config{APIKey: "k"}.AuthMode())
	assert.Equal(t, AuthOAuth2, Config{UseOAuth2: true}.AuthMode())
	assert.Equal(t, "oauth2", AuthOAuth2.String())
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{APIKey: "k"}.Validate())
	assert.NoError(t, Config{UseOAuth2: true, OAuth2Token: "T"}.Validate())
	assert.True(t, IsConfigurationError(Config{}.Validate()))
	assert.True(t, IsConfigurationError(Config{UseOAuth2: true, APIKey: "k", OAuth2Token: "T"}.Validate()))
}
