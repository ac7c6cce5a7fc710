// Package id provides identifier generation for mocked API objects.
//
// Every object kind served by the mock carries a distinguishable prefix so
// tests can assert on the format of a returned id:
//
//   - Assistant: asst_<24 alphanumerics>
//   - Thread:    thread_<24 alphanumerics>
//   - Message:   msg_<24 alphanumerics>
//   - Run:       run_<24 alphanumerics>
//
// Request ids (sent back in the x-request-id header) are UUID v4 based.
//
// All random material comes from crypto/rand.
package id
