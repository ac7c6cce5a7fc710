// Package endpoints implements the stateful request handlers behind the
// mocked Assistants API surface.
//
// Each resource mock (assistants, threads, messages, runs) owns one Route per
// verb. A Route counts its own invocations, applies the configured latency
// and leading failures through pkg/chaos, records every call, and can have
// its handler replaced from a test with SetResponder. Mocks read and write a
// stateful.StateStore; share one store between mocks to make the thread and
// assistant existence checks meaningful.
//
// Run create and retrieve additionally consult a scripted RunSequence. The
// partial applied on a call is chosen by position: the first non-failing
// call of an endpoint gets entry 0, the next gets entry 1, and so on.
package endpoints
