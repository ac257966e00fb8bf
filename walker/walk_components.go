package walker

import "github.com/erraggy/asyncapitools/parser"

// walkComponents walks every component category in specification order.
func (w *Walker) walkComponents(comps *parser.Components, basePath string, state *walkState) error {
	if err := w.walkComponentSchemas(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentServers(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentChannels(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentOperations(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentMessages(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentSecuritySchemes(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentServerVariables(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentParameters(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentCorrelationIDs(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentReplies(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentReplyAddresses(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentExternalDocs(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentTags(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentOperationTraits(comps, basePath, state); err != nil {
		return err
	}
	if err := w.walkComponentMessageTraits(comps, basePath, state); err != nil {
		return err
	}
	return w.walkComponentBindings(comps, basePath, state)
}

func (w *Walker) walkComponentSchemas(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.Schemas, func(key string, schema *parser.Schema) error {
		if schema == nil {
			return nil
		}
		schemaState := state.clone()
		schemaState.name = key
		return w.walkSchema(schema, basePath+".schemas['"+key+"']", 0, schemaState)
	})
}

func (w *Walker) walkComponentServers(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.Servers, func(key string, server *parser.Server) error {
		if server == nil {
			return nil
		}
		serverState := state.clone()
		serverState.name = key
		return w.walkServer(server, basePath+".servers['"+key+"']", serverState)
	})
}

func (w *Walker) walkComponentChannels(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.Channels, func(key string, ch *parser.Channel) error {
		if ch == nil {
			return nil
		}
		chState := state.clone()
		chState.channelKey = key
		chState.name = key
		return w.walkChannel(ch, basePath+".channels['"+key+"']", chState)
	})
}

func (w *Walker) walkComponentOperations(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.Operations, func(key string, op *parser.Operation) error {
		if op == nil {
			return nil
		}
		opState := state.clone()
		opState.operationKey = key
		opState.name = key
		return w.walkOperation(op, basePath+".operations['"+key+"']", opState)
	})
}

func (w *Walker) walkComponentMessages(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.Messages, func(key string, msg *parser.Message) error {
		if msg == nil {
			return nil
		}
		msgState := state.clone()
		msgState.name = key
		return w.walkMessage(msg, basePath+".messages['"+key+"']", msgState)
	})
}

func (w *Walker) walkComponentSecuritySchemes(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.SecuritySchemes, func(key string, scheme *parser.SecurityScheme) error {
		if scheme == nil {
			return nil
		}
		schemeState := state.clone()
		schemeState.name = key
		return w.walkSecurityScheme(scheme, basePath+".securitySchemes['"+key+"']", schemeState)
	})
}

func (w *Walker) walkComponentServerVariables(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.ServerVariables, func(key string, v *parser.ServerVariable) error {
		if v == nil {
			return nil
		}
		varState := state.clone()
		varState.name = key
		return w.walkServerVariable(v, basePath+".serverVariables['"+key+"']", varState)
	})
}

func (w *Walker) walkComponentParameters(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.Parameters, func(key string, param *parser.Parameter) error {
		if param == nil {
			return nil
		}
		paramState := state.clone()
		paramState.name = key
		return w.walkParameter(param, basePath+".parameters['"+key+"']", paramState)
	})
}

func (w *Walker) walkComponentCorrelationIDs(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.CorrelationIDs, func(key string, cid *parser.CorrelationID) error {
		if cid == nil {
			return nil
		}
		cidState := state.clone()
		cidState.name = key
		return w.walkCorrelationID(cid, basePath+".correlationIds['"+key+"']", cidState)
	})
}

func (w *Walker) walkComponentReplies(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.Replies, func(key string, reply *parser.OperationReply) error {
		if reply == nil {
			return nil
		}
		replyState := state.clone()
		replyState.name = key
		return w.walkReply(reply, basePath+".replies['"+key+"']", replyState)
	})
}

func (w *Walker) walkComponentReplyAddresses(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.ReplyAddresses, func(key string, addr *parser.OperationReplyAddress) error {
		if addr == nil {
			return nil
		}
		addrState := state.clone()
		addrState.name = key
		return w.walkReplyAddress(addr, basePath+".replyAddresses['"+key+"']", addrState)
	})
}

func (w *Walker) walkComponentExternalDocs(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.ExternalDocs, func(key string, extDocs *parser.ExternalDocs) error {
		if extDocs == nil {
			return nil
		}
		docsState := state.clone()
		docsState.name = key
		return w.walkExternalDocs(extDocs, basePath+".externalDocs['"+key+"']", docsState)
	})
}

func (w *Walker) walkComponentTags(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.Tags, func(key string, tag *parser.Tag) error {
		if tag == nil {
			return nil
		}
		tagState := state.clone()
		tagState.name = key
		return w.walkTag(tag, basePath+".tags['"+key+"']", tagState)
	})
}

func (w *Walker) walkComponentOperationTraits(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.OperationTraits, func(key string, trait *parser.OperationTrait) error {
		if trait == nil {
			return nil
		}
		traitState := state.clone()
		traitState.name = key
		return w.walkOperationTrait(trait, basePath+".operationTraits['"+key+"']", traitState)
	})
}

func (w *Walker) walkComponentMessageTraits(comps *parser.Components, basePath string, state *walkState) error {
	return rangePatterned(w, comps.MessageTraits, func(key string, trait *parser.MessageTrait) error {
		if trait == nil {
			return nil
		}
		traitState := state.clone()
		traitState.name = key
		return w.walkMessageTrait(trait, basePath+".messageTraits['"+key+"']", traitState)
	})
}

// walkComponentBindings walks the four bindings categories. Each category
// uses the edge of the attachment point its entries are meant for.
func (w *Walker) walkComponentBindings(comps *parser.Components, basePath string, state *walkState) error {
	categories := []struct {
		m        *parser.PatternedMap[*parser.Bindings]
		category string
		edge     RefEdge
	}{
		{comps.ServerBindings, parser.CategoryServerBindings, EdgeServerBindingsRef},
		{comps.ChannelBindings, parser.CategoryChannelBindings, EdgeChannelBindingsRef},
		{comps.OperationBindings, parser.CategoryOperationBindings, EdgeOperationBindingsRef},
		{comps.MessageBindings, parser.CategoryMessageBindings, EdgeMessageBindingsRef},
	}

	for _, cat := range categories {
		if w.stopped {
			return nil
		}
		category := cat.category
		edge := cat.edge
		if err := rangePatterned(w, cat.m, func(key string, b *parser.Bindings) error {
			if b == nil {
				return nil
			}
			bState := state.clone()
			bState.name = key
			return w.walkBindings(b, basePath+"."+category+"['"+key+"']", edge, bState)
		}); err != nil {
			return err
		}
	}
	return nil
}
