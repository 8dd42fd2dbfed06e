package repometa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/reposeo/internal/repometa"
)

func TestNewOwnerSlug(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{name: "valid_owner", input: "chenxingqiang", expected: "chenxingqiang"},
		{name: "trims_owner", input: "  org-name ", expected: "org-name"},
		{name: "rejects_empty", input: "   ", expectError: true},
		{name: "rejects_slash", input: "owner/name", expectError: true},
		{name: "rejects_embedded_whitespace", input: "owner name", expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result, err := repometa.NewOwnerSlug(testCase.input)
			if testCase.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, testCase.expected, result.String())
		})
	}
}

func TestNewRepositoryName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{name: "valid_name", input: "reposeo", expected: "reposeo"},
		{name: "trims_name", input: " repo-seo ", expected: "repo-seo"},
		{name: "rejects_empty", input: "", expectError: true},
		{name: "rejects_slash", input: "owner/repo", expectError: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result, err := repometa.NewRepositoryName(testCase.input)
			if testCase.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, testCase.expected, result.String())
		})
	}
}

func TestNewOwnerRepository(t *testing.T) {
	t.Parallel()

	ownerRepository, err := repometa.NewOwnerRepository("owner/repo")
	require.NoError(t, err)
	require.Equal(t, "owner", ownerRepository.Owner().String())
	require.Equal(t, "repo", ownerRepository.Repository().String())
	require.Equal(t, "owner/repo", ownerRepository.String())

	_, err = repometa.NewOwnerRepository("missing-separator")
	require.Error(t, err)

	_, err = repometa.NewOwnerRepository("too/many/parts")
	require.Error(t, err)
}

func TestRepositoryDescriptorPresenceHelpers(t *testing.T) {
	t.Parallel()

	owner, ownerError := repometa.NewOwnerSlug("owner")
	require.NoError(t, ownerError)
	repository, repositoryError := repometa.NewRepositoryName("repo")
	require.NoError(t, repositoryError)

	descriptor := repometa.RepositoryDescriptor{Owner: owner, Name: repository}
	require.False(t, descriptor.HasReadme())
	require.False(t, descriptor.HasDescription())

	descriptor.Readme = "# Title\n\nBody."
	descriptor.Description = "A tool."
	require.True(t, descriptor.HasReadme())
	require.True(t, descriptor.HasDescription())

	whitespaceDescriptor := repometa.RepositoryDescriptor{Owner: owner, Name: repository, Readme: "   \n", Description: "  "}
	require.False(t, whitespaceDescriptor.HasReadme())
	require.False(t, whitespaceDescriptor.HasDescription())
}
