package mcpserver

import (
	"context"

	"github.com/erraggy/asyncapitools/parser"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type statsInput struct {
	Doc docInput `json:"doc" jsonschema:"The AsyncAPI document to summarize"`
}

type statsServer struct {
	Name     string `json:"name"`
	Host     string `json:"host,omitempty"`
	Protocol string `json:"protocol,omitempty"`
}

type statsOutput struct {
	Version            string        `json:"version"`
	Title              string        `json:"title"`
	Description        string        `json:"description,omitempty"`
	DefaultContentType string        `json:"default_content_type,omitempty"`
	Format             string        `json:"format"`
	ServerCount        int           `json:"server_count"`
	ChannelCount       int           `json:"channel_count"`
	OperationCount     int           `json:"operation_count"`
	SendCount          int           `json:"send_count"`
	ReceiveCount       int           `json:"receive_count"`
	MessageCount       int           `json:"message_count"`
	SchemaCount        int           `json:"schema_count"`
	ComponentCount     int           `json:"component_count"`
	InternalRefCount   int           `json:"internal_ref_count"`
	ExternalRefCount   int           `json:"external_ref_count"`
	Servers            []statsServer `json:"servers,omitempty"`
	Protocols          []string      `json:"protocols,omitempty"`
	Tags               []string      `json:"tags,omitempty"`
}

func handleStats(_ context.Context, _ *mcp.CallToolRequest, input statsInput) (*mcp.CallToolResult, statsOutput, error) {
	result, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), statsOutput{}, nil
	}

	output := statsOutput{
		Version:          result.Version,
		Format:           string(result.SourceFormat),
		ServerCount:      result.Stats.ServerCount,
		ChannelCount:     result.Stats.ChannelCount,
		OperationCount:   result.Stats.OperationCount,
		SendCount:        result.Stats.SendCount,
		ReceiveCount:     result.Stats.ReceiveCount,
		MessageCount:     result.Stats.MessageCount,
		SchemaCount:      result.Stats.SchemaCount,
		ComponentCount:   result.Stats.ComponentCount,
		InternalRefCount: result.Stats.InternalRefCount,
		ExternalRefCount: result.Stats.ExternalRefCount,
		Protocols:        result.Stats.Protocols,
	}

	doc := result.Document
	if doc == nil {
		return nil, output, nil
	}

	output.DefaultContentType = doc.DefaultContentType
	if doc.Info != nil {
		output.Title = doc.Info.Title
		output.Description = doc.Info.Description
		for _, tag := range doc.Info.Tags {
			if tag != nil {
				output.Tags = append(output.Tags, tag.Name)
			}
		}
	}

	doc.Servers.Range(func(name string, s *parser.Server) bool {
		if s == nil {
			return true
		}
		output.Servers = append(output.Servers, statsServer{
			Name:     name,
			Host:     s.Host,
			Protocol: s.Protocol,
		})
		return true
	})

	return nil, output, nil
}
