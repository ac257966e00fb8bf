package parser

import "slices"

// DocumentStats contains statistical information about an AsyncAPI document
type DocumentStats struct {
	ServerCount      int      // Number of root servers defined
	ChannelCount     int      // Number of root channels defined
	OperationCount   int      // Number of root operations defined
	SendCount        int      // Operations with action "send"
	ReceiveCount     int      // Operations with action "receive"
	MessageCount     int      // Total messages defined across channels
	SchemaCount      int      // Number of component schemas
	ComponentCount   int      // Total entries across all component categories
	InternalRefCount int      // $ref values pointing inside the document
	ExternalRefCount int      // $ref values pointing outside the document
	Protocols        []string // Distinct server protocols, sorted
}

// GetDocumentStats returns statistics for a parsed AsyncAPI document.
//
// The ref counts come from the raw document tree, which a model-built
// document does not have; the parser fills them through CountRefs after
// decoding.
func GetDocumentStats(doc *AsyncAPIDocument) DocumentStats {
	stats := DocumentStats{}
	if doc == nil {
		return stats
	}

	stats.ServerCount = doc.Servers.Len()
	stats.ChannelCount = doc.Channels.Len()
	stats.OperationCount = doc.Operations.Len()

	doc.Operations.Range(func(_ string, op *Operation) bool {
		if op == nil {
			return true
		}
		switch op.Action {
		case ActionSend:
			stats.SendCount++
		case ActionReceive:
			stats.ReceiveCount++
		}
		return true
	})

	protocols := make(map[string]struct{})
	doc.Servers.Range(func(_ string, srv *Server) bool {
		if srv != nil && srv.Protocol != "" {
			protocols[srv.Protocol] = struct{}{}
		}
		return true
	})

	doc.Channels.Range(func(_ string, ch *Channel) bool {
		if ch != nil {
			stats.MessageCount += ch.Messages.Len()
		}
		return true
	})

	if c := doc.Components; c != nil {
		stats.SchemaCount = c.Schemas.Len()
		for _, category := range componentCategories {
			stats.ComponentCount += len(c.CategoryKeys(category))
		}
		c.Servers.Range(func(_ string, srv *Server) bool {
			if srv != nil && srv.Protocol != "" {
				protocols[srv.Protocol] = struct{}{}
			}
			return true
		})
	}

	if len(protocols) > 0 {
		stats.Protocols = make([]string, 0, len(protocols))
		for p := range protocols {
			stats.Protocols = append(stats.Protocols, p)
		}
		slices.Sort(stats.Protocols)
	}

	return stats
}

// CountRefs walks a raw document tree and counts "$ref" string values,
// split into internal (starting with "#") and external occurrences.
func CountRefs(v any) (internal, external int) {
	switch node := v.(type) {
	case map[string]any:
		if ref, ok := node["$ref"].(string); ok && ref != "" {
			if IsExternalRef(ref) {
				external++
			} else {
				internal++
			}
		}
		for _, child := range node {
			i, e := CountRefs(child)
			internal += i
			external += e
		}
	case []any:
		for _, child := range node {
			i, e := CountRefs(child)
			internal += i
			external += e
		}
	}
	return internal, external
}
