package parser

// Security scheme types defined by the AsyncAPI 3.0 specification.
const (
	SecurityTypeUserPassword         = "userPassword"
	SecurityTypeAPIKey               = "apiKey"
	SecurityTypeX509                 = "X509"
	SecurityTypeSymmetricEncryption  = "symmetricEncryption"
	SecurityTypeAsymmetricEncryption = "asymmetricEncryption"
	SecurityTypePlain                = "plain"
	SecurityTypeScramSha256          = "scramSha256"
	SecurityTypeScramSha512          = "scramSha512"
	SecurityTypeGssapi               = "gssapi"
	SecurityTypeHTTPAPIKey           = "httpApiKey"
	SecurityTypeHTTP                 = "http"
	SecurityTypeOAuth2               = "oauth2"
	SecurityTypeOpenIDConnect        = "openIdConnect"
)

// SecuritySchemeTypes returns every known security scheme type. The
// returned slice is a copy.
func SecuritySchemeTypes() []string {
	return []string{
		SecurityTypeUserPassword,
		SecurityTypeAPIKey,
		SecurityTypeX509,
		SecurityTypeSymmetricEncryption,
		SecurityTypeAsymmetricEncryption,
		SecurityTypePlain,
		SecurityTypeScramSha256,
		SecurityTypeScramSha512,
		SecurityTypeGssapi,
		SecurityTypeHTTPAPIKey,
		SecurityTypeHTTP,
		SecurityTypeOAuth2,
		SecurityTypeOpenIDConnect,
	}
}

// SecurityScheme defines a security scheme that can be used by server and
// operation security lists.
type SecurityScheme struct {
	Ref              string      `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Type             string      `yaml:"type,omitempty" json:"type,omitempty"` // Required unless Ref is set
	Description      string      `yaml:"description,omitempty" json:"description,omitempty"`
	Name             string      `yaml:"name,omitempty" json:"name,omitempty"` // Required for apiKey and httpApiKey
	In               string      `yaml:"in,omitempty" json:"in,omitempty"`     // Required for apiKey ("user", "password") and httpApiKey ("query", "header", "cookie")
	Scheme           string      `yaml:"scheme,omitempty" json:"scheme,omitempty"`
	BearerFormat     string      `yaml:"bearerFormat,omitempty" json:"bearerFormat,omitempty"`
	Flows            *OAuthFlows `yaml:"flows,omitempty" json:"flows,omitempty"` // Required for oauth2
	OpenIDConnectURL string      `yaml:"openIdConnectUrl,omitempty" json:"openIdConnectUrl,omitempty"`
	Scopes           []string    `yaml:"scopes,omitempty" json:"scopes,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// OAuthFlows allows configuration of the supported OAuth flows.
type OAuthFlows struct {
	Implicit          *OAuthFlow `yaml:"implicit,omitempty" json:"implicit,omitempty"`
	Password          *OAuthFlow `yaml:"password,omitempty" json:"password,omitempty"`
	ClientCredentials *OAuthFlow `yaml:"clientCredentials,omitempty" json:"clientCredentials,omitempty"`
	AuthorizationCode *OAuthFlow `yaml:"authorizationCode,omitempty" json:"authorizationCode,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// OAuthFlow holds configuration details for a supported OAuth flow.
type OAuthFlow struct {
	AuthorizationURL string            `yaml:"authorizationUrl,omitempty" json:"authorizationUrl,omitempty"` // Required for implicit and authorizationCode flows
	TokenURL         string            `yaml:"tokenUrl,omitempty" json:"tokenUrl,omitempty"`                 // Required for password, clientCredentials, and authorizationCode flows
	RefreshURL       string            `yaml:"refreshUrl,omitempty" json:"refreshUrl,omitempty"`
	AvailableScopes  map[string]string `yaml:"availableScopes,omitempty" json:"availableScopes,omitempty"` // Required: scope name -> description
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}

// CorrelationID specifies an identifier at design time that can be used for
// message tracing and correlation.
type CorrelationID struct {
	Ref         string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Location    string `yaml:"location,omitempty" json:"location,omitempty"` // Required unless Ref is set; runtime expression
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Extra captures specification extensions (fields starting with "x-")
	Extra map[string]any `yaml:",inline" json:"-"`
}
