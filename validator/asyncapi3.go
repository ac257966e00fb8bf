// This file implements the field-level checks of the AsyncAPI 3.0
// specification: required fields, enumerated values, and string formats.
// Reference targets are left to the references rule.

package validator

import (
	"fmt"
	"strings"

	"github.com/erraggy/asyncapitools/internal/stringutil"
	"github.com/erraggy/asyncapitools/parser"
	"github.com/erraggy/asyncapitools/walker"
)

// semanticsRule walks every node of the document and checks it against
// the object definition it instantiates. Nodes that are references are
// skipped; the references rule owns those.
type semanticsRule struct{}

func (semanticsRule) Name() string { return "semantics" }

func (semanticsRule) Apply(ctx *Context) error {
	return walker.Walk(ctx.Parsed(),
		walker.WithDocumentHandler(func(wc *walker.WalkContext, doc *parser.AsyncAPIDocument) walker.Action {
			checkDocument(ctx, doc)
			return next(ctx)
		}),
		walker.WithInfoHandler(func(wc *walker.WalkContext, info *parser.Info) walker.Action {
			checkInfo(ctx, dottedPath(wc.JSONPath), info)
			return next(ctx)
		}),
		walker.WithServerHandler(func(wc *walker.WalkContext, server *parser.Server) walker.Action {
			checkServer(ctx, dottedPath(wc.JSONPath), server)
			return next(ctx)
		}),
		walker.WithServerVariableHandler(func(wc *walker.WalkContext, v *parser.ServerVariable) walker.Action {
			checkServerVariable(ctx, dottedPath(wc.JSONPath), v)
			return next(ctx)
		}),
		walker.WithChannelHandler(func(wc *walker.WalkContext, ch *parser.Channel) walker.Action {
			checkChannel(ctx, dottedPath(wc.JSONPath), ch)
			return next(ctx)
		}),
		walker.WithParameterHandler(func(wc *walker.WalkContext, param *parser.Parameter) walker.Action {
			checkParameter(ctx, dottedPath(wc.JSONPath), param)
			return next(ctx)
		}),
		walker.WithOperationHandler(func(wc *walker.WalkContext, op *parser.Operation) walker.Action {
			checkOperation(ctx, dottedPath(wc.JSONPath), op)
			return next(ctx)
		}),
		walker.WithReplyAddressHandler(func(wc *walker.WalkContext, addr *parser.OperationReplyAddress) walker.Action {
			checkReplyAddress(ctx, dottedPath(wc.JSONPath), addr)
			return next(ctx)
		}),
		walker.WithMessageHandler(func(wc *walker.WalkContext, msg *parser.Message) walker.Action {
			if msg.Ref == "" {
				checkContentType(ctx, dottedPath(wc.JSONPath), msg.ContentType)
			}
			return next(ctx)
		}),
		walker.WithMessageTraitHandler(func(wc *walker.WalkContext, trait *parser.MessageTrait) walker.Action {
			if trait.Ref == "" {
				checkContentType(ctx, dottedPath(wc.JSONPath), trait.ContentType)
			}
			return next(ctx)
		}),
		walker.WithSecuritySchemeHandler(func(wc *walker.WalkContext, scheme *parser.SecurityScheme) walker.Action {
			checkSecurityScheme(ctx, dottedPath(wc.JSONPath), scheme)
			return next(ctx)
		}),
		walker.WithCorrelationIDHandler(func(wc *walker.WalkContext, cid *parser.CorrelationID) walker.Action {
			checkCorrelationID(ctx, dottedPath(wc.JSONPath), cid)
			return next(ctx)
		}),
		walker.WithTagHandler(func(wc *walker.WalkContext, tag *parser.Tag) walker.Action {
			checkTag(ctx, dottedPath(wc.JSONPath), tag)
			return next(ctx)
		}),
		walker.WithExternalDocsHandler(func(wc *walker.WalkContext, docs *parser.ExternalDocs) walker.Action {
			checkExternalDocs(ctx, dottedPath(wc.JSONPath), docs)
			return next(ctx)
		}),
		walker.WithBindingsHandler(func(wc *walker.WalkContext, b *parser.Bindings) walker.Action {
			checkBindings(ctx, dottedPath(wc.JSONPath), b)
			return next(ctx)
		}),
	)
}

func checkDocument(ctx *Context, doc *parser.AsyncAPIDocument) {
	if doc.AsyncAPI == "" {
		ctx.AddError("asyncapi", "Document must declare an asyncapi version",
			withField("asyncapi"), withSpecRef(specRef("A2SObject")))
	}
	if ctx.Stopped() {
		return
	}
	if doc.Info == nil {
		ctx.AddError("info", "Document must have an info object",
			withField("info"), withSpecRef(specRef("A2SObject")))
	}
	if ctx.Stopped() {
		return
	}
	if doc.ID != "" && !stringutil.IsValidURI(doc.ID) {
		ctx.AddError("id", fmt.Sprintf("Invalid URI format: %s", doc.ID),
			withField("id"), withValue(doc.ID), withSpecRef(specRef("A2SIdString")))
	}
	if ctx.Stopped() {
		return
	}
	if doc.DefaultContentType != "" && !isValidMediaType(doc.DefaultContentType) {
		ctx.AddError("defaultContentType", fmt.Sprintf("Invalid media type: %s", doc.DefaultContentType),
			withField("defaultContentType"), withValue(doc.DefaultContentType), withSpecRef(specRef("defaultContentTypeString")))
	}
}

func checkInfo(ctx *Context, base string, info *parser.Info) {
	if info.Title == "" {
		ctx.AddError(joinPath(base, "title"), "Info object must have a title",
			withField("title"), withSpecRef(specRef("infoObject")))
	}
	if ctx.Stopped() {
		return
	}
	if info.Version == "" {
		ctx.AddError(joinPath(base, "version"), "Info object must have a version",
			withField("version"), withSpecRef(specRef("infoObject")))
	}
	if ctx.Stopped() {
		return
	}
	if info.TermsOfService != "" && !isValidURL(info.TermsOfService) {
		ctx.AddError(joinPath(base, "termsOfService"), fmt.Sprintf("Invalid URL format: %s", info.TermsOfService),
			withField("termsOfService"), withValue(info.TermsOfService), withSpecRef(specRef("infoObject")))
	}
	if contact := info.Contact; contact != nil && !ctx.Stopped() {
		if contact.URL != "" && !isValidURL(contact.URL) {
			ctx.AddError(joinPath(base, "contact.url"), fmt.Sprintf("Invalid URL format: %s", contact.URL),
				withField("url"), withValue(contact.URL), withSpecRef(specRef("contactObject")))
		}
		if contact.Email != "" && !stringutil.IsValidEmail(contact.Email) && !ctx.Stopped() {
			ctx.AddError(joinPath(base, "contact.email"), fmt.Sprintf("Invalid email format: %s", contact.Email),
				withField("email"), withValue(contact.Email), withSpecRef(specRef("contactObject")))
		}
	}
	if license := info.License; license != nil && !ctx.Stopped() {
		if license.Name == "" {
			ctx.AddError(joinPath(base, "license.name"), "License object must have a name",
				withField("name"), withSpecRef(specRef("licenseObject")))
		}
		if license.URL != "" && !isValidURL(license.URL) && !ctx.Stopped() {
			ctx.AddError(joinPath(base, "license.url"), fmt.Sprintf("Invalid URL format: %s", license.URL),
				withField("url"), withValue(license.URL), withSpecRef(specRef("licenseObject")))
		}
	}
}

func checkServer(ctx *Context, base string, server *parser.Server) {
	if server.Ref != "" {
		return
	}
	if server.Host == "" {
		ctx.AddError(joinPath(base, "host"), "Server object must have a host",
			withField("host"), withSpecRef(specRef("serverObject")))
	}
	if ctx.Stopped() {
		return
	}
	if server.Protocol == "" {
		ctx.AddError(joinPath(base, "protocol"), "Server object must have a protocol",
			withField("protocol"), withSpecRef(specRef("serverObject")))
	}
}

func checkServerVariable(ctx *Context, base string, v *parser.ServerVariable) {
	if v.Ref != "" || v.Default == "" || len(v.Enum) == 0 {
		return
	}
	for _, e := range v.Enum {
		if e == v.Default {
			return
		}
	}
	ctx.AddWarning(joinPath(base, "default"),
		fmt.Sprintf("Server variable default '%s' is not one of the enum values", v.Default),
		withField("default"), withValue(v.Default), withSpecRef(specRef("serverVariableObject")))
}

func checkChannel(ctx *Context, base string, ch *parser.Channel) {
	if ch.Ref != "" || ch.Address == "" {
		return
	}

	used := make(map[string]bool)
	address := ch.Address
	for i := 0; i < len(address); {
		open := strings.IndexByte(address[i:], '{')
		if open < 0 {
			break
		}
		open += i
		end := strings.IndexByte(address[open:], '}')
		if end < 0 {
			ctx.AddError(joinPath(base, "address"),
				fmt.Sprintf("Channel address '%s' has an unterminated parameter expression", address),
				withField("address"), withValue(address), withSpecRef(specRef("channelObject")))
			return
		}
		end += open
		name := address[open+1 : end]
		switch {
		case name == "":
			ctx.AddError(joinPath(base, "address"),
				fmt.Sprintf("Channel address '%s' has an empty parameter expression", address),
				withField("address"), withValue(address), withSpecRef(specRef("channelObject")))
		case !ch.Parameters.Has(name):
			ctx.AddError(joinPath(base, "address"),
				fmt.Sprintf("Channel address references parameter '{%s}' but it is not declared in parameters", name),
				withField("address"), withValue(address), withSpecRef(specRef("channelObject")))
			used[name] = true
		default:
			used[name] = true
		}
		if ctx.Stopped() {
			return
		}
		i = end + 1
	}

	for _, key := range ch.Parameters.Keys() {
		if ctx.Stopped() {
			return
		}
		if !used[key] {
			ctx.AddWarning(joinPath(joinPath(base, "parameters"), key),
				fmt.Sprintf("Channel parameter '%s' is not used in the channel address", key),
				withField(key), withSpecRef(specRef("parametersObject")))
		}
	}
}

func checkParameter(ctx *Context, base string, param *parser.Parameter) {
	if param.Ref != "" {
		return
	}
	if param.Location != "" && !isValidRuntimeExpression(param.Location) {
		ctx.AddError(joinPath(base, "location"),
			fmt.Sprintf("Invalid runtime expression: %s", param.Location),
			withField("location"), withValue(param.Location), withSpecRef(specRef("parameterObject")))
	}
	if ctx.Stopped() || param.Default == "" || len(param.Enum) == 0 {
		return
	}
	for _, e := range param.Enum {
		if e == param.Default {
			return
		}
	}
	ctx.AddWarning(joinPath(base, "default"),
		fmt.Sprintf("Parameter default '%s' is not one of the enum values", param.Default),
		withField("default"), withValue(param.Default), withSpecRef(specRef("parameterObject")))
}

func checkOperation(ctx *Context, base string, op *parser.Operation) {
	if op.Ref != "" {
		return
	}
	switch op.Action {
	case "":
		ctx.AddError(joinPath(base, "action"), "Operation object must have an action",
			withField("action"), withSpecRef(specRef("operationObject")))
	case "send", "receive":
	default:
		ctx.AddError(joinPath(base, "action"),
			fmt.Sprintf(`Operation action must be "send" or "receive", got "%s"`, op.Action),
			withField("action"), withValue(op.Action), withSpecRef(specRef("operationObject")))
	}
	if ctx.Stopped() {
		return
	}
	if op.Channel == nil {
		ctx.AddError(joinPath(base, "channel"), "Operation object must have a channel",
			withField("channel"), withSpecRef(specRef("operationObject")))
	}
}

func checkReplyAddress(ctx *Context, base string, addr *parser.OperationReplyAddress) {
	if addr.Ref != "" {
		return
	}
	if addr.Location == "" {
		ctx.AddError(joinPath(base, "location"), "Operation reply address must have a location",
			withField("location"), withSpecRef(specRef("operationReplyAddressObject")))
		return
	}
	if !isValidRuntimeExpression(addr.Location) {
		ctx.AddError(joinPath(base, "location"),
			fmt.Sprintf("Invalid runtime expression: %s", addr.Location),
			withField("location"), withValue(addr.Location), withSpecRef(specRef("operationReplyAddressObject")))
	}
}

func checkContentType(ctx *Context, base string, contentType string) {
	if contentType == "" || isValidMediaType(contentType) {
		return
	}
	ctx.AddError(joinPath(base, "contentType"), fmt.Sprintf("Invalid media type: %s", contentType),
		withField("contentType"), withValue(contentType), withSpecRef(specRef("messageObject")))
}

func checkCorrelationID(ctx *Context, base string, cid *parser.CorrelationID) {
	if cid.Ref != "" {
		return
	}
	if cid.Location == "" {
		ctx.AddError(joinPath(base, "location"), "Correlation ID must have a location",
			withField("location"), withSpecRef(specRef("correlationIdObject")))
		return
	}
	if !isValidRuntimeExpression(cid.Location) {
		ctx.AddError(joinPath(base, "location"),
			fmt.Sprintf("Invalid runtime expression: %s", cid.Location),
			withField("location"), withValue(cid.Location), withSpecRef(specRef("correlationIdObject")))
	}
}

func checkSecurityScheme(ctx *Context, base string, scheme *parser.SecurityScheme) {
	if scheme.Ref != "" {
		return
	}
	if scheme.Type == "" {
		ctx.AddError(joinPath(base, "type"), "Security scheme must have a type",
			withField("type"), withSpecRef(specRef("securitySchemeObject")))
		return
	}

	known := false
	for _, t := range parser.SecuritySchemeTypes() {
		if t == scheme.Type {
			known = true
			break
		}
	}
	if !known {
		ctx.AddError(joinPath(base, "type"), fmt.Sprintf("Invalid security scheme type: %s", scheme.Type),
			withField("type"), withValue(scheme.Type), withSpecRef(specRef("securitySchemeObject")))
		return
	}

	switch scheme.Type {
	case parser.SecurityTypeAPIKey:
		if scheme.In != "user" && scheme.In != "password" {
			ctx.AddError(joinPath(base, "in"),
				fmt.Sprintf(`Security scheme type 'apiKey' requires 'in' to be "user" or "password", got "%s"`, scheme.In),
				withField("in"), withValue(scheme.In), withSpecRef(specRef("securitySchemeObject")))
		}
	case parser.SecurityTypeHTTPAPIKey:
		if scheme.Name == "" {
			ctx.AddError(joinPath(base, "name"), "Security scheme type 'httpApiKey' must have a name",
				withField("name"), withSpecRef(specRef("securitySchemeObject")))
		}
		if ctx.Stopped() {
			return
		}
		if scheme.In != "query" && scheme.In != "header" && scheme.In != "cookie" {
			ctx.AddError(joinPath(base, "in"),
				fmt.Sprintf(`Security scheme type 'httpApiKey' requires 'in' to be "query", "header", or "cookie", got "%s"`, scheme.In),
				withField("in"), withValue(scheme.In), withSpecRef(specRef("securitySchemeObject")))
		}
	case parser.SecurityTypeHTTP:
		if scheme.Scheme == "" {
			ctx.AddError(joinPath(base, "scheme"), "Security scheme type 'http' must have a scheme",
				withField("scheme"), withSpecRef(specRef("securitySchemeObject")))
		}
	case parser.SecurityTypeOAuth2:
		if scheme.Flows == nil {
			ctx.AddError(joinPath(base, "flows"), "Security scheme type 'oauth2' must have flows",
				withField("flows"), withSpecRef(specRef("oauthFlowsObject")))
			return
		}
		checkOAuthFlows(ctx, joinPath(base, "flows"), scheme.Flows)
	case parser.SecurityTypeOpenIDConnect:
		if scheme.OpenIDConnectURL == "" {
			ctx.AddError(joinPath(base, "openIdConnectUrl"),
				"Security scheme type 'openIdConnect' must have an openIdConnectUrl",
				withField("openIdConnectUrl"), withSpecRef(specRef("securitySchemeObject")))
		} else if !isValidURL(scheme.OpenIDConnectURL) {
			ctx.AddError(joinPath(base, "openIdConnectUrl"),
				fmt.Sprintf("Invalid URL format: %s", scheme.OpenIDConnectURL),
				withField("openIdConnectUrl"), withValue(scheme.OpenIDConnectURL), withSpecRef(specRef("securitySchemeObject")))
		}
	}
}

func checkOAuthFlows(ctx *Context, base string, flows *parser.OAuthFlows) {
	checkOAuthFlow(ctx, joinPath(base, "implicit"), "implicit", flows.Implicit)
	if ctx.Stopped() {
		return
	}
	checkOAuthFlow(ctx, joinPath(base, "password"), "password", flows.Password)
	if ctx.Stopped() {
		return
	}
	checkOAuthFlow(ctx, joinPath(base, "clientCredentials"), "clientCredentials", flows.ClientCredentials)
	if ctx.Stopped() {
		return
	}
	checkOAuthFlow(ctx, joinPath(base, "authorizationCode"), "authorizationCode", flows.AuthorizationCode)
}

func checkOAuthFlow(ctx *Context, base, name string, flow *parser.OAuthFlow) {
	if flow == nil {
		return
	}
	needsAuthorizationURL := name == "implicit" || name == "authorizationCode"
	needsTokenURL := name != "implicit"

	if needsAuthorizationURL && flow.AuthorizationURL == "" {
		ctx.AddError(joinPath(base, "authorizationUrl"),
			fmt.Sprintf("OAuth flow '%s' must have an authorizationUrl", name),
			withField("authorizationUrl"), withSpecRef(specRef("oauthFlowObject")))
	}
	if ctx.Stopped() {
		return
	}
	if needsTokenURL && flow.TokenURL == "" {
		ctx.AddError(joinPath(base, "tokenUrl"),
			fmt.Sprintf("OAuth flow '%s' must have a tokenUrl", name),
			withField("tokenUrl"), withSpecRef(specRef("oauthFlowObject")))
	}
	if ctx.Stopped() {
		return
	}
	urls := []struct {
		field string
		value string
	}{
		{"authorizationUrl", flow.AuthorizationURL},
		{"tokenUrl", flow.TokenURL},
		{"refreshUrl", flow.RefreshURL},
	}
	for _, u := range urls {
		if u.value != "" && !isValidURL(u.value) {
			ctx.AddError(joinPath(base, u.field), fmt.Sprintf("Invalid URL format: %s", u.value),
				withField(u.field), withValue(u.value), withSpecRef(specRef("oauthFlowObject")))
		}
		if ctx.Stopped() {
			return
		}
	}
	if flow.AvailableScopes == nil {
		ctx.AddError(joinPath(base, "availableScopes"),
			fmt.Sprintf("OAuth flow '%s' must define availableScopes", name),
			withField("availableScopes"), withSpecRef(specRef("oauthFlowObject")))
	}
}

func checkTag(ctx *Context, base string, tag *parser.Tag) {
	if tag.Ref != "" {
		return
	}
	if tag.Name == "" {
		ctx.AddError(joinPath(base, "name"), "Tag object must have a name",
			withField("name"), withSpecRef(specRef("tagObject")))
	}
}

func checkExternalDocs(ctx *Context, base string, docs *parser.ExternalDocs) {
	if docs.Ref != "" {
		return
	}
	if docs.URL == "" {
		ctx.AddError(joinPath(base, "url"), "External documentation must have a url",
			withField("url"), withSpecRef(specRef("externalDocumentationObject")))
		return
	}
	if !isValidURL(docs.URL) {
		ctx.AddError(joinPath(base, "url"), fmt.Sprintf("Invalid URL format: %s", docs.URL),
			withField("url"), withValue(docs.URL), withSpecRef(specRef("externalDocumentationObject")))
	}
}

func checkBindings(ctx *Context, base string, b *parser.Bindings) {
	if b.Ref != "" {
		return
	}
	for _, name := range b.ProtocolNames() {
		if ctx.Stopped() {
			return
		}
		if !parser.IsKnownBindingProtocol(name) {
			ctx.AddWarning(joinPath(base, name),
				fmt.Sprintf("Binding protocol '%s' is not in the AsyncAPI bindings catalog", name),
				withField(name), withSpecRef(specRef("fixed-fields")))
		}
	}
}
