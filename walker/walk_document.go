package walker

import (
	"fmt"

	"github.com/erraggy/asyncapitools/parser"
)

// walkDocument traverses an AsyncAPI document in field order: info, servers,
// channels, operations, components.
func (w *Walker) walkDocument(doc *parser.AsyncAPIDocument, state *walkState) error {
	continueToChildren := true
	if w.onDocument != nil {
		wc := state.buildContext("$")
		if !w.handleAction(w.onDocument(wc, doc)) {
			if w.stopped {
				return nil
			}
			continueToChildren = false
		}
	}

	if !continueToChildren {
		return nil
	}

	// Info
	if doc.Info != nil {
		if err := w.walkInfo(doc.Info, "$.info", state); err != nil {
			return err
		}
		if w.stopped {
			return nil
		}
	}

	// Servers
	if err := rangePatterned(w, doc.Servers, func(key string, server *parser.Server) error {
		if server == nil {
			return nil
		}
		serverState := state.clone()
		serverState.name = key
		return w.walkServer(server, "$.servers['"+key+"']", serverState)
	}); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Channels
	if err := rangePatterned(w, doc.Channels, func(key string, ch *parser.Channel) error {
		if ch == nil {
			return nil
		}
		chState := state.clone()
		chState.channelKey = key
		return w.walkChannel(ch, "$.channels['"+key+"']", chState)
	}); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Operations
	if err := rangePatterned(w, doc.Operations, func(key string, op *parser.Operation) error {
		if op == nil {
			return nil
		}
		opState := state.clone()
		opState.operationKey = key
		return w.walkOperation(op, "$.operations['"+key+"']", opState)
	}); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Components
	if doc.Components != nil {
		compState := state.clone()
		compState.isComponent = true
		if err := w.walkComponents(doc.Components, "$.components", compState); err != nil {
			return err
		}
	}

	return nil
}

// walkInfo walks the info object and its tags and external docs.
func (w *Walker) walkInfo(info *parser.Info, basePath string, state *walkState) error {
	continueToChildren := true
	if w.onInfo != nil {
		wc := state.buildContext(basePath)
		continueToChildren = w.handleAction(w.onInfo(wc, info))
		if w.stopped {
			return nil
		}
	}

	if !continueToChildren {
		return nil
	}

	if err := w.walkTags(info.Tags, basePath+".tags", state); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}
	return w.walkExternalDocs(info.ExternalDocs, basePath+".externalDocs", state)
}

// walkServer walks a single Server.
func (w *Walker) walkServer(server *parser.Server, basePath string, state *walkState) error {
	if server == nil {
		return nil
	}

	// Check for $ref
	if w.handleRef(server.Ref, basePath, EdgeServerRef, state) == Stop {
		return nil
	}

	continueToChildren := true
	if w.onServer != nil {
		wc := state.buildContext(basePath)
		continueToChildren = w.handleAction(w.onServer(wc, server))
		if w.stopped {
			return nil
		}
	}

	if !continueToChildren {
		return nil
	}

	// Clear name for nested nodes
	nested := state.clone()
	nested.name = ""

	// Variables
	if err := rangePatterned(w, server.Variables, func(key string, v *parser.ServerVariable) error {
		if v == nil {
			return nil
		}
		varState := nested.clone()
		varState.name = key
		return w.walkServerVariable(v, basePath+".variables['"+key+"']", varState)
	}); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Security
	for i, scheme := range server.Security {
		if w.stopped {
			return nil
		}
		if err := w.walkSecurityScheme(scheme, fmt.Sprintf("%s.security[%d]", basePath, i), nested); err != nil {
			return err
		}
	}

	// Tags
	if err := w.walkTags(server.Tags, basePath+".tags", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// ExternalDocs
	if err := w.walkExternalDocs(server.ExternalDocs, basePath+".externalDocs", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Bindings
	return w.walkBindings(server.Bindings, basePath+".bindings", EdgeServerBindingsRef, nested)
}

// walkServerVariable walks a single ServerVariable.
func (w *Walker) walkServerVariable(v *parser.ServerVariable, basePath string, state *walkState) error {
	if v == nil {
		return nil
	}

	if w.handleRef(v.Ref, basePath, EdgeServerVariableRef, state) == Stop {
		return nil
	}

	if w.onServerVariable != nil {
		wc := state.buildContext(basePath)
		w.handleAction(w.onServerVariable(wc, v))
	}
	return nil
}

// walkChannel walks a single Channel.
func (w *Walker) walkChannel(ch *parser.Channel, basePath string, state *walkState) error {
	if ch == nil {
		return nil
	}

	// Check for $ref
	if w.handleRef(ch.Ref, basePath, EdgeChannelRef, state) == Stop {
		return nil
	}

	continueToChildren := true
	if w.onChannel != nil {
		wc := state.buildContext(basePath)
		continueToChildren = w.handleAction(w.onChannel(wc, ch))
		if w.stopped {
			return nil
		}
	}

	if !continueToChildren {
		return nil
	}

	// Clear name for nested nodes
	nested := state.clone()
	nested.name = ""

	// Messages
	if err := rangePatterned(w, ch.Messages, func(key string, msg *parser.Message) error {
		if msg == nil {
			return nil
		}
		msgState := nested.clone()
		msgState.name = key
		return w.walkMessage(msg, basePath+".messages['"+key+"']", msgState)
	}); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Servers (Reference Objects only)
	for i, ref := range ch.Servers {
		if w.stopped {
			return nil
		}
		if ref == nil {
			continue
		}
		if w.handleRef(ref.Ref, fmt.Sprintf("%s.servers[%d]", basePath, i), EdgeChannelServers, nested) == Stop {
			return nil
		}
	}

	// Parameters
	if err := rangePatterned(w, ch.Parameters, func(key string, param *parser.Parameter) error {
		if param == nil {
			return nil
		}
		paramState := nested.clone()
		paramState.name = key
		return w.walkParameter(param, basePath+".parameters['"+key+"']", paramState)
	}); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Tags
	if err := w.walkTags(ch.Tags, basePath+".tags", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// ExternalDocs
	if err := w.walkExternalDocs(ch.ExternalDocs, basePath+".externalDocs", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Bindings
	return w.walkBindings(ch.Bindings, basePath+".bindings", EdgeChannelBindingsRef, nested)
}

// walkOperation walks a single Operation.
func (w *Walker) walkOperation(op *parser.Operation, basePath string, state *walkState) error {
	if op == nil {
		return nil
	}

	// Check for $ref
	if w.handleRef(op.Ref, basePath, EdgeOperationRef, state) == Stop {
		return nil
	}

	continueToChildren := true
	if w.onOperation != nil {
		wc := state.buildContext(basePath)
		continueToChildren = w.handleAction(w.onOperation(wc, op))
		if w.stopped {
			return nil
		}
	}

	if !continueToChildren {
		return nil
	}

	// Clear name for nested nodes
	nested := state.clone()
	nested.name = ""

	// Channel (Reference Object only)
	if op.Channel != nil {
		if w.handleRef(op.Channel.Ref, basePath+".channel", EdgeOperationChannel, nested) == Stop {
			return nil
		}
	}

	// Security
	for i, scheme := range op.Security {
		if w.stopped {
			return nil
		}
		if err := w.walkSecurityScheme(scheme, fmt.Sprintf("%s.security[%d]", basePath, i), nested); err != nil {
			return err
		}
	}

	// Tags
	if err := w.walkTags(op.Tags, basePath+".tags", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// ExternalDocs
	if err := w.walkExternalDocs(op.ExternalDocs, basePath+".externalDocs", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Bindings
	if err := w.walkBindings(op.Bindings, basePath+".bindings", EdgeOperationBindingsRef, nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Traits
	for i, trait := range op.Traits {
		if w.stopped {
			return nil
		}
		if trait == nil {
			continue
		}
		if err := w.walkOperationTrait(trait, fmt.Sprintf("%s.traits[%d]", basePath, i), nested); err != nil {
			return err
		}
	}

	// Messages (Reference Objects only)
	for i, ref := range op.Messages {
		if w.stopped {
			return nil
		}
		if ref == nil {
			continue
		}
		if w.handleRef(ref.Ref, fmt.Sprintf("%s.messages[%d]", basePath, i), EdgeOperationMessages, nested) == Stop {
			return nil
		}
	}

	// Reply
	return w.walkReply(op.Reply, basePath+".reply", nested)
}

// walkOperationTrait walks a single OperationTrait.
func (w *Walker) walkOperationTrait(trait *parser.OperationTrait, basePath string, state *walkState) error {
	if trait == nil {
		return nil
	}

	// Check for $ref
	if w.handleRef(trait.Ref, basePath, EdgeOperationTraitRef, state) == Stop {
		return nil
	}

	continueToChildren := true
	if w.onOperationTrait != nil {
		wc := state.buildContext(basePath)
		continueToChildren = w.handleAction(w.onOperationTrait(wc, trait))
		if w.stopped {
			return nil
		}
	}

	if !continueToChildren {
		return nil
	}

	// Clear name for nested nodes
	nested := state.clone()
	nested.name = ""

	// Security
	for i, scheme := range trait.Security {
		if w.stopped {
			return nil
		}
		if err := w.walkSecurityScheme(scheme, fmt.Sprintf("%s.security[%d]", basePath, i), nested); err != nil {
			return err
		}
	}

	// Tags
	if err := w.walkTags(trait.Tags, basePath+".tags", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// ExternalDocs
	if err := w.walkExternalDocs(trait.ExternalDocs, basePath+".externalDocs", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Bindings
	return w.walkBindings(trait.Bindings, basePath+".bindings", EdgeOperationBindingsRef, nested)
}

// walkReply walks an OperationReply.
func (w *Walker) walkReply(reply *parser.OperationReply, basePath string, state *walkState) error {
	if reply == nil {
		return nil
	}

	// Check for $ref
	if w.handleRef(reply.Ref, basePath, EdgeReplyRef, state) == Stop {
		return nil
	}

	continueToChildren := true
	if w.onReply != nil {
		wc := state.buildContext(basePath)
		continueToChildren = w.handleAction(w.onReply(wc, reply))
		if w.stopped {
			return nil
		}
	}

	if !continueToChildren {
		return nil
	}

	// Clear name for nested nodes
	nested := state.clone()
	nested.name = ""

	// Address
	if err := w.walkReplyAddress(reply.Address, basePath+".address", nested); err != nil {
		return err
	}
	if w.stopped {
		return nil
	}

	// Channel (Reference Object only)
	if reply.Channel != nil {
		if w.handleRef(reply.Channel.Ref, basePath+".channel", EdgeReplyChannel, nested) == Stop {
			return nil
		}
	}

	// Messages (Reference Objects only)
	for i, ref := range reply.Messages {
		if w.stopped {
			return nil
		}
		if ref == nil {
			continue
		}
		if w.handleRef(ref.Ref, fmt.Sprintf("%s.messages[%d]", basePath, i), EdgeReplyMessages, nested) == Stop {
			return nil
		}
	}

	return nil
}

// walkReplyAddress walks an OperationReplyAddress.
func (w *Walker) walkReplyAddress(addr *parser.OperationReplyAddress, basePath string, state *walkState) error {
	if addr == nil {
		return nil
	}

	if w.handleRef(addr.Ref, basePath, EdgeReplyAddressRef, state) == Stop {
		return nil
	}

	if w.onReplyAddress != nil {
		wc := state.buildContext(basePath)
		w.handleAction(w.onReplyAddress(wc, addr))
	}
	return nil
}
