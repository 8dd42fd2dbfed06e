package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/reposeo/internal/gitrepo"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name        string
		remote      string
		expected    gitrepo.RemoteURL
		expectError bool
	}{
		{
			name:   "https_remote",
			remote: "https://github.com/octocat/widgets.git",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolHTTPS,
				Host:       "github.com",
				Owner:      "octocat",
				Repository: "widgets",
			},
		},
		{
			name:   "https_remote_without_suffix",
			remote: "https://github.com/octocat/widgets",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolHTTPS,
				Host:       "github.com",
				Owner:      "octocat",
				Repository: "widgets",
			},
		},
		{
			name:   "scp_style_ssh_remote",
			remote: "git@github.com:octocat/widgets.git",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "github.com",
				Owner:      "octocat",
				Repository: "widgets",
			},
		},
		{
			name:   "ssh_protocol_remote",
			remote: "ssh://git@github.com/octocat/widgets.git",
			expected: gitrepo.RemoteURL{
				Protocol:   gitrepo.RemoteProtocolSSH,
				Host:       "github.com",
				Owner:      "octocat",
				Repository: "widgets",
			},
		},
		{
			name:        "empty_remote",
			remote:      "   ",
			expectError: true,
		},
		{
			name:        "unsupported_protocol",
			remote:      "ftp://github.com/octocat/widgets",
			expectError: true,
		},
		{
			name:        "missing_repository_segment",
			remote:      "https://github.com/octocat",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			subtest.Parallel()

			parsedRemote, parseError := gitrepo.ParseRemoteURL(testCase.remote)
			if testCase.expectError {
				require.Error(subtest, parseError)
				return
			}
			require.NoError(subtest, parseError)
			require.Equal(subtest, testCase.expected, parsedRemote)
		})
	}
}
