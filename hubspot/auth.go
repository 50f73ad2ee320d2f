package hubspot

import (
	"net/http"

	"golang.org/x/oauth2"
)

// AuthMode is the authentication strategy selected by a Config.
type AuthMode int

const (
	AuthUnconfigured AuthMode = iota
	AuthAPIKey
	AuthOAuth2
)

func (m AuthMode) String() string {
	switch m {
	case AuthAPIKey:
		return "api_key"
	case AuthOAuth2:
		return "oauth2"
	default:
		return "unconfigured"
	}
}

func oauth2ConfigError() *ConfigurationError {
	return &ConfigurationError{
		Key:    "oauth2",
		Reason: "requires an access token and no hapikey",
	}
}

// authPlan describes what a request needs for authentication. It is computed
// before any parameter is touched.
type authPlan struct {
	mode     AuthMode
	apiKey   string // empty when the key must not be attached
	token    *oauth2.Token
	portalID string // empty when the template has no :portal_id
}

// preflight validates cfg against the template and produces a plan or a
// ConfigurationError. It never performs I/O.
func preflight(cfg Config, template string, opts BuildOptions) (authPlan, error) {
	var plan authPlan

	if cfg.UseOAuth2 {
		if !cfg.oauth2UsageValid() {
			return authPlan{}, oauth2ConfigError()
		}
		plan.mode = AuthOAuth2
		plan.token = &oauth2.Token{AccessToken: cfg.OAuth2Token}
	} else {
		if cfg.APIKey == "" {
			return authPlan{}, &ConfigurationError{Key: APIKeyParam, Reason: "not configured"}
		}
		plan.mode = AuthAPIKey
		if !opts.DisableAPIKeyAuth {
			plan.apiKey = cfg.APIKey
		}
	}

	if hasPlaceholder(template, PortalIDParam) {
		if cfg.PortalID == "" {
			return authPlan{}, &ConfigurationError{Key: PortalIDParam, Reason: "not configured"}
		}
		plan.portalID = cfg.PortalID
	}

	return plan, nil
}

// params returns a new bag with the credential and portal id applied ahead of
// the caller's entries. In OAuth2 mode a caller hapikey is always dropped.
func (p authPlan) params(caller Params) Params {
	out := make(Params, 0, len(caller)+2)
	if p.apiKey != "" {
		out = append(out, Param{Key: APIKeyParam, Value: p.apiKey})
	}
	if p.portalID != "" {
		out = append(out, Param{Key: PortalIDParam, Value: p.portalID})
	}
	for _, param := range caller {
		if param.Key == APIKeyParam && (p.apiKey != "" || p.mode == AuthOAuth2) {
			continue
		}
		if param.Key == PortalIDParam && p.portalID != "" {
			continue
		}
		out = append(out, param)
	}
	return out
}

func (p authPlan) applyHeaders(h http.Header) {
	if p.token == nil {
		return
	}
	h.Set("Authorization", p.token.Type()+" "+p.token.AccessToken)
}
