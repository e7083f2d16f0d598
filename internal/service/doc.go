// Package service contains the application use cases. It orchestrates the
// pure analytics in internal/domain with the persistence interfaces in
// internal/store and the narrative boundary in internal/generation.
//
// Key components:
//
//   - EntryService extracts text signals at write time and persists entries.
//   - InsightService fetches both partners' streams, runs the analyzers
//     concurrently and assembles the weekly report.
//   - TextService analyzes free text without storing it.
//
// Services receive dependencies through constructor injection and never
// depend on concrete infrastructure implementations.
package service
