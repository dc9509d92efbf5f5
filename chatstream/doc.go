// Package chatstream normalizes heterogeneous streaming chat backends — each
// with its own authentication, request shape, incremental-frame encoding and
// termination signal — into one uniform session abstraction the host
// application can drive without knowing which vendor is behind it.
//
// # Architecture
//
// The package is built from three small layers:
//
//   - Frame decoders turn raw response bytes into discrete textual frames:
//     EventStreamDecoder for blank-line-delimited SSE "data:" frames, and
//     GrowingArrayDecoder for bodies that are one slowly-growing JSON array.
//   - Vendor adapters (Adapter) build a wire request from canonical history
//     and interpret one decoded frame, including vendor error shapes.
//   - Session owns the conversation history and the call lifecycle, applying
//     deltas to a placeholder assistant turn in strict arrival order.
//
// # Quick start
//
//	engine := chatstream.SelectEngine("chatgpt")
//	session := engine.NewSession(
//	    chatstream.WithConfig(chatstream.VendorConfig{APIKey: key}),
//	    chatstream.WithHooks(chatstream.Hooks{
//	        OnGenerating: func(text string) { render(text) },
//	        OnComplete:   func(text string) { done(text) },
//	        OnError:      func(msg string) { toast(msg) },
//	    }),
//	)
//	err := session.Send(ctx, "hello")
//
// Send blocks while the reply streams; run it in a goroutine when the caller
// must stay responsive. Abort cancels the in-flight call without losing the
// text already applied, and the session remains reusable afterwards.
//
// # Configuration
//
// Connection settings merge in priority order: caller override (WithConfig),
// persisted setting (WithSettings, keys engines.<id>.endpoint|api_key|model),
// then the engine's built-in default.
package chatstream
