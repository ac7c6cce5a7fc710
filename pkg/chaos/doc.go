// Package chaos provides deterministic fault injection for mocked endpoints.
//
// Unlike probabilistic chaos, every fault here is keyed to the invocation
// count of a single route so a test can script "fail N times, then succeed"
// and get the same behavior on every run.
//
// # Supported Side Effects
//
//   - Latency: a fixed delay before the handler runs
//   - Failures: the first N invocations return a transient 5xx
//
// # Usage with HTTP Handlers
//
//	injector := chaos.NewInjector(chaos.SideEffects{
//	    Latency:  50 * time.Millisecond,
//	    Failures: 2,
//	})
//	handler := chaos.NewMiddleware(myHandler, injector, logger)
//
// The wrapped handler can read the current invocation from the request
// context with chaos.GetInvocation. The invocation number drives scripted
// response sequences:
//
//	inv := chaos.GetInvocation(r.Context())
//	partial := sequence.Next("retrieve", inv.SequenceIndex())
package chaos
