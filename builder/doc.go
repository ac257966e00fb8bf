// Package builder provides a fluent API for constructing AsyncAPI 3.0
// documents programmatically.
//
// A DocumentBuilder accumulates servers, channels, operations, and
// component entries through chainable methods, then materializes a
// *parser.AsyncAPIDocument with Build:
//
//	doc, err := builder.New("Order Service", "1.2.0").
//		WithDefaultContentType("application/json").
//		AddServer("production", &parser.Server{
//			Host:     "broker.example.com:9092",
//			Protocol: "kafka",
//		}).
//		AddChannel("orders", &parser.Channel{Address: "orders.created"}).
//		AddMessage("orderCreated", &parser.Message{Name: "OrderCreated"}).
//		AddSendOperation("sendOrderCreated", "orders", "orderCreated").
//		Build()
//
// Collection keys are checked against the patterned key grammar as they
// are added; violations accumulate and surface together when Build is
// called, matching aaserrors.ErrKeyFormat through the error chain.
//
// The builder does not validate document semantics. Feed the result of
// BuildResult to the validator package for that:
//
//	result, err := spec.BuildResult()
//	if err != nil {
//		return err
//	}
//	report, err := validator.New().ValidateParsed(*result)
//
// Builder instances are not safe for concurrent use.
package builder
