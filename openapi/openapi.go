// Package openapi embeds the OpenAPI description of the widget's JSON endpoints.
// It is imported by the HTTP server to serve the document at /openapi.yaml.
package openapi

import _ "embed"

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
//
//go:embed openapi.yaml
var OpenAPI []byte
