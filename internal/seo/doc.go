// Package seo turns provider suggestions into publishable repository
// metadata: descriptions bounded to GitHub's display length and topics
// normalized to GitHub's topic charset.
package seo
