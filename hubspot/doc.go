// Package hubspot builds and sends authenticated requests to the HubSpot CRM API.
//
// A Connection turns a path template such as "/owners/v2/owners/:owner_id"
// plus an ordered Params bag into an absolute URL, attaches either the hapikey
// query parameter or an OAuth2 bearer header, sends the request and classifies
// the outcome.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	conn := hubspot.NewConnection(hubspot.Config{
//		APIKey: "demo",
//		Logger: &logger,
//	}, hubspot.WithTimeout(10*time.Second))
//
//	owners, err := conn.GetJSON(ctx, "/owners/v2/owners", hubspot.Params{
//		{Key: "includeInactive", Value: false},
//	})
//	// GET https://api.hubapi.com/owners/v2/owners?hapikey=demo&includeInactive=false
//
// # Parameters
//
// Keys containing "range" take a Range and are emitted twice, begin first.
// Keys of the form batch_first_name are sent as firstName. time.Time values
// become epoch milliseconds and slices repeat the key once per element.
//
// # Error Handling
//
// Failures are typed and match a sentinel with errors.Is:
//
//   - ConfigurationError (ErrConfiguration): auth or portal id missing, raised before any I/O
//   - MissingInterpolationError (ErrMissingInterpolation): a :placeholder had no value
//   - InvalidParameterError (ErrInvalidParameter): a value did not fit its key
//   - AuthenticationError (ErrAuthentication): the API returned an engagement/message/status body
//   - RequestError (ErrRequest): any other failed response or transport error
//   - APIError (ErrAPI): domain failures raised by wrappers
//
// KindOf maps an error to a Kind for callers that branch on the category.
package hubspot
