// Package repometa defines the immutable repository snapshot consumed by the
// analysis and generation pipeline, along with validated identity value types
// for owners, repository names, and owner/repository pairs.
package repometa
