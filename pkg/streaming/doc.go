// Package streaming simulates assistant event streams.
//
// An EventStream is pulled one event at a time. Each step applies its store
// mutation before returning the event, so a client that retrieves the run
// between two events observes the state the last event described. Streams
// are single-use: once exhausted they yield nothing.
package streaming
