// Package gemini implements generation.Narrator on Google's Gemini API.
//
// Calls are retried with exponential backoff for transient failures; safety
// blocks and empty responses are reported as permanent errors.
package gemini
