// Package pipeline derives the hit list of an analysis: which hits survive the
// filter toggles, in what order they are listed, which of them match a
// free-text search, and which one is selected.
//
// Every stage is a pure function of its inputs. Caching is layered on top
// through the Stages interface (see NewCachedStages) and never changes a
// result.
package pipeline
