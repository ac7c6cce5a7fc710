// Package config loads scenario files for the mocked API.
//
// A scenario configures the API root, logging, and per-resource side
// effects. Files may be YAML (.yaml, .yml) or JSON and are validated
// against an embedded JSON Schema before they are decoded:
//
//	baseURL: https://api.openai.com/v1
//	log: {level: debug, format: text}
//	threads: {latency: 50ms}
//	messages: {validateThreadExists: true}
//	runs:
//	  failures: 1
//	  validateThreadExists: true
//	  sequence:
//	    create: [{status: queued}]
//	    retrieve: [{status: in_progress}, {status: completed}]
//
// Latency accepts a Go duration string or a number of seconds.
package config
