// Package rules holds the keyword/regex tables that drive every text heuristic:
// tags, interactions, anxiety clues, repair signals, conflict categories, love
// languages and keyword stop words.
//
// Tables are data, not code. A deployment can override any section through a
// rules file (see Load); the compiled Tables are immutable and shared freely
// between goroutines.
package rules
