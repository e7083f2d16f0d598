// Package generation defines the boundary to external LLM services used to
// write the weekly couple narrative. Provider implementations live under
// internal/platform (gemini, openai) and return the sentinel errors declared
// here.
package generation
