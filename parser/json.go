package parser

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"

	"github.com/erraggy/asyncapitools/internal/maputil"
)

// JSON codecs for the model structs that carry specification extensions.
//
// Go's json package has no equivalent of yaml's ",inline", so every struct
// with an Extra map needs a matching MarshalJSON/UnmarshalJSON pair:
// marshalling splices the "x-" fields into the object body, unmarshalling
// collects them out of it. The pairs all follow the same alias pattern so
// that the nested fields keep their own codecs.

// spliceExtra appends extension fields to an already marshalled JSON
// object. Extension keys are emitted in sorted order so output is
// deterministic.
func spliceExtra(base []byte, extra map[string]any) ([]byte, error) {
	if len(extra) == 0 || len(base) < 2 || base[0] != '{' {
		return base, nil
	}
	var buf bytes.Buffer
	buf.Grow(len(base) + 16*len(extra))
	buf.Write(base[:len(base)-1])
	empty := len(bytes.TrimSpace(base[1:len(base)-1])) == 0
	for _, k := range maputil.SortedKeys(extra) {
		if !empty {
			buf.WriteByte(',')
		}
		empty = false
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(extra[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// extractExtensions collects the top-level "x-" fields of a JSON object.
// It returns nil when the object has none.
func extractExtensions(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	var extra map[string]any
	for k, v := range m {
		if strings.HasPrefix(k, "x-") {
			if extra == nil {
				extra = make(map[string]any)
			}
			extra[k] = v
		}
	}
	return extra, nil
}

// MarshalJSON flattens specification extensions into the object body.
func (i *Info) MarshalJSON() ([]byte, error) {
	type alias Info
	base, err := json.Marshal((*alias)(i))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, i.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (i *Info) UnmarshalJSON(data []byte) error {
	type alias Info
	if err := json.Unmarshal(data, (*alias)(i)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	i.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (c *Contact) MarshalJSON() ([]byte, error) {
	type alias Contact
	base, err := json.Marshal((*alias)(c))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, c.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (c *Contact) UnmarshalJSON(data []byte) error {
	type alias Contact
	if err := json.Unmarshal(data, (*alias)(c)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	c.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (l *License) MarshalJSON() ([]byte, error) {
	type alias License
	base, err := json.Marshal((*alias)(l))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, l.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (l *License) UnmarshalJSON(data []byte) error {
	type alias License
	if err := json.Unmarshal(data, (*alias)(l)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	l.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (t *Tag) MarshalJSON() ([]byte, error) {
	type alias Tag
	base, err := json.Marshal((*alias)(t))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, t.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (t *Tag) UnmarshalJSON(data []byte) error {
	type alias Tag
	if err := json.Unmarshal(data, (*alias)(t)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	t.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (e *ExternalDocs) MarshalJSON() ([]byte, error) {
	type alias ExternalDocs
	base, err := json.Marshal((*alias)(e))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, e.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (e *ExternalDocs) UnmarshalJSON(data []byte) error {
	type alias ExternalDocs
	if err := json.Unmarshal(data, (*alias)(e)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	e.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (s *Server) MarshalJSON() ([]byte, error) {
	type alias Server
	base, err := json.Marshal((*alias)(s))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, s.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (s *Server) UnmarshalJSON(data []byte) error {
	type alias Server
	if err := json.Unmarshal(data, (*alias)(s)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	s.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (v *ServerVariable) MarshalJSON() ([]byte, error) {
	type alias ServerVariable
	base, err := json.Marshal((*alias)(v))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, v.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (v *ServerVariable) UnmarshalJSON(data []byte) error {
	type alias ServerVariable
	if err := json.Unmarshal(data, (*alias)(v)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	v.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (c *Channel) MarshalJSON() ([]byte, error) {
	type alias Channel
	base, err := json.Marshal((*alias)(c))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, c.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (c *Channel) UnmarshalJSON(data []byte) error {
	type alias Channel
	if err := json.Unmarshal(data, (*alias)(c)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	c.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (p *Parameter) MarshalJSON() ([]byte, error) {
	type alias Parameter
	base, err := json.Marshal((*alias)(p))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, p.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	type alias Parameter
	if err := json.Unmarshal(data, (*alias)(p)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	p.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (o *Operation) MarshalJSON() ([]byte, error) {
	type alias Operation
	base, err := json.Marshal((*alias)(o))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, o.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (o *Operation) UnmarshalJSON(data []byte) error {
	type alias Operation
	if err := json.Unmarshal(data, (*alias)(o)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	o.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (o *OperationTrait) MarshalJSON() ([]byte, error) {
	type alias OperationTrait
	base, err := json.Marshal((*alias)(o))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, o.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (o *OperationTrait) UnmarshalJSON(data []byte) error {
	type alias OperationTrait
	if err := json.Unmarshal(data, (*alias)(o)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	o.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (r *OperationReply) MarshalJSON() ([]byte, error) {
	type alias OperationReply
	base, err := json.Marshal((*alias)(r))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, r.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (r *OperationReply) UnmarshalJSON(data []byte) error {
	type alias OperationReply
	if err := json.Unmarshal(data, (*alias)(r)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	r.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (a *OperationReplyAddress) MarshalJSON() ([]byte, error) {
	type alias OperationReplyAddress
	base, err := json.Marshal((*alias)(a))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, a.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (a *OperationReplyAddress) UnmarshalJSON(data []byte) error {
	type alias OperationReplyAddress
	if err := json.Unmarshal(data, (*alias)(a)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	a.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (m *Message) MarshalJSON() ([]byte, error) {
	type alias Message
	base, err := json.Marshal((*alias)(m))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, m.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	if err := json.Unmarshal(data, (*alias)(m)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	m.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (m *MessageTrait) MarshalJSON() ([]byte, error) {
	type alias MessageTrait
	base, err := json.Marshal((*alias)(m))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, m.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (m *MessageTrait) UnmarshalJSON(data []byte) error {
	type alias MessageTrait
	if err := json.Unmarshal(data, (*alias)(m)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	m.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (m *MessageExample) MarshalJSON() ([]byte, error) {
	type alias MessageExample
	base, err := json.Marshal((*alias)(m))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, m.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (m *MessageExample) UnmarshalJSON(data []byte) error {
	type alias MessageExample
	if err := json.Unmarshal(data, (*alias)(m)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	m.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (s *SecurityScheme) MarshalJSON() ([]byte, error) {
	type alias SecurityScheme
	base, err := json.Marshal((*alias)(s))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, s.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (s *SecurityScheme) UnmarshalJSON(data []byte) error {
	type alias SecurityScheme
	if err := json.Unmarshal(data, (*alias)(s)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	s.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (f *OAuthFlows) MarshalJSON() ([]byte, error) {
	type alias OAuthFlows
	base, err := json.Marshal((*alias)(f))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, f.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (f *OAuthFlows) UnmarshalJSON(data []byte) error {
	type alias OAuthFlows
	if err := json.Unmarshal(data, (*alias)(f)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	f.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (f *OAuthFlow) MarshalJSON() ([]byte, error) {
	type alias OAuthFlow
	base, err := json.Marshal((*alias)(f))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, f.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (f *OAuthFlow) UnmarshalJSON(data []byte) error {
	type alias OAuthFlow
	if err := json.Unmarshal(data, (*alias)(f)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	f.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (c *CorrelationID) MarshalJSON() ([]byte, error) {
	type alias CorrelationID
	base, err := json.Marshal((*alias)(c))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, c.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (c *CorrelationID) UnmarshalJSON(data []byte) error {
	type alias CorrelationID
	if err := json.Unmarshal(data, (*alias)(c)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	c.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (s *Schema) MarshalJSON() ([]byte, error) {
	type alias Schema
	base, err := json.Marshal((*alias)(s))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, s.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (s *Schema) UnmarshalJSON(data []byte) error {
	type alias Schema
	if err := json.Unmarshal(data, (*alias)(s)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	s.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (c *Components) MarshalJSON() ([]byte, error) {
	type alias Components
	base, err := json.Marshal((*alias)(c))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, c.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (c *Components) UnmarshalJSON(data []byte) error {
	type alias Components
	if err := json.Unmarshal(data, (*alias)(c)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	c.Extra = extra
	return nil
}

// MarshalJSON flattens specification extensions into the object body.
func (d *AsyncAPIDocument) MarshalJSON() ([]byte, error) {
	type alias AsyncAPIDocument
	base, err := json.Marshal((*alias)(d))
	if err != nil {
		return nil, err
	}
	return spliceExtra(base, d.Extra)
}

// UnmarshalJSON captures specification extensions alongside known fields.
func (d *AsyncAPIDocument) UnmarshalJSON(data []byte) error {
	type alias AsyncAPIDocument
	if err := json.Unmarshal(data, (*alias)(d)); err != nil {
		return err
	}
	extra, err := extractExtensions(data)
	if err != nil {
		return err
	}
	d.Extra = extra
	return nil
}
