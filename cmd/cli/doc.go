// Package cli constructs the reposeo command-line interface, wiring the
// Cobra command hierarchy, configuration loader, provider registry, and
// structured logging primitives. It exposes helpers to build reusable
// application instances and to execute the default command set as a library.
package cli
