// Package optimize orchestrates the repository SEO pipeline: it fetches
// repository profiles through the gh gateway, analyzes their content, asks a
// generation provider for a description and topics, and previews or publishes
// the resulting changes.
package optimize
