// Package providers defines the text-generation provider abstraction and a
// registry of named backend constructors. Providers turn repository analysis
// into description and topic suggestions; they never decide fallback policy,
// which belongs to the orchestrator.
package providers
