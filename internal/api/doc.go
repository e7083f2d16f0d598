// Package api adapts HTTP requests to the entry, insight and text analysis
// services. Handlers decode and validate requests, call a service and map
// its errors to status codes with safe messages.
package api
