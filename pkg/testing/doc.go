// Package testing provides a testing SDK for using the OpenAI mock in Go tests.
//
// New builds a mock bound to the test's lifetime. Requests can reach it
// in-process through Client or OpenAIClient, or over a real listener
// after Start.
//
// # Basic Usage
//
//	func TestSummarize(t *testing.T) {
//	    mock := mocktesting.New(t, engine.Config{})
//
//	    client := mock.OpenAIClient()
//	    thread, err := client.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
//	    require.NoError(t, err)
//
//	    mock.AssertCalled(t, "POST", "/threads")
//	}
//
// # Scripted Runs
//
// Run states are scripted through the runs configuration:
//
//	mock := mocktesting.New(t, engine.Config{
//	    Runs: endpoints.Config{
//	        Sequence: schema.RunSequence{
//	            Retrieve: []schema.PartialRun{
//	                {Status: schema.Ptr(schema.RunStatusInProgress)},
//	                {Status: schema.Ptr(schema.RunStatusCompleted)},
//	            },
//	        },
//	    },
//	})
//
// # Assertions
//
// Paths are relative to the API root and may use {param} placeholders:
//
//	mock.AssertCalledTimes(t, "GET", "/threads/{thread_id}/runs/{run_id}", 2)
//	mock.AssertNotCalled(t, "DELETE", "/threads/{thread_id}")
//
//	for _, req := range mock.Requests() {
//	    req.AssertHeader(t, "Authorization", "Bearer sk-test")
//	}
//
// Per-route counters are also available on the engine itself:
//
//	mock.AssertRouteCalledTimes(t, mock.Mock().Runs.Retrieve, 2)
package testing
