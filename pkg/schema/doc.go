// Package schema defines the wire types of the mocked Assistants API.
//
// Entity types (Assistant, Thread, Message, Run) serialize with the field names
// the OpenAI SDKs expect, so a response body produced by the mock can be decoded
// by the real client unchanged. Request parameter types only carry the fields
// the mock reads; unknown fields are ignored.
//
// PartialRun is the scripting unit for run state: every field is optional, and
// only the fields that are set are merged onto a base run.
package schema
