// Package gitrepo resolves GitHub repository identities from local git
// working directories.
//
// It exposes ParseRemoteURL for decoding SSH and HTTPS remote URLs and
// RepositoryLocator for discovering the owner/repository pair behind the
// origin remote of the current directory.
package gitrepo
