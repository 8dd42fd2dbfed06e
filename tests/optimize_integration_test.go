package tests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	optimizeIntegrationTimeout            = 60 * time.Second
	optimizeIntegrationRunSubcommand      = "run"
	optimizeIntegrationModulePathConstant = "."
	optimizeIntegrationCommandName        = "optimize"
	optimizeIntegrationRepoFlag           = "--repo"
	optimizeIntegrationRepositoryConstant = "octocat/example"
	optimizeIntegrationProviderFlag       = "--provider"
	optimizeIntegrationProviderConstant   = "local"
	optimizeIntegrationApplyFlag          = "--apply"
	optimizeIntegrationLogLevelFlag       = "--log-level"
	optimizeIntegrationErrorLevel         = "error"
	optimizeIntegrationStubExecutableName = "gh"
	optimizeIntegrationStubLogEnvName     = "REPOSEO_GH_STUB_LOG"
	optimizeIntegrationStubLogFileName    = "gh_invocations.log"
	optimizeIntegrationStubBinDirName     = "bin"
	optimizeIntegrationPreviewSnippet     = "octocat/example: would update"
	optimizeIntegrationAppliedSnippet     = "octocat/example: updated"
	optimizeIntegrationProviderSnippet    = "(provider local)"
	optimizeIntegrationPatchSnippet       = "api repos/octocat/example -X PATCH"
	optimizeIntegrationPutSnippet         = "api repos/octocat/example/topics -X PUT"
	optimizeIntegrationDryRunCaseName     = "dry_run_previews_changes"
	optimizeIntegrationApplyCaseName      = "apply_publishes_changes"
	optimizeIntegrationStubScript         = "#!/bin/sh\n" +
		"printf '%s\\n' \"$*\" >> \"$REPOSEO_GH_STUB_LOG\"\n" +
		"if [ \"$1\" = \"repo\" ] && [ \"$2\" = \"view\" ]; then\n" +
		"  cat <<'EOF'\n" +
		"{\"name\":\"example\",\"owner\":{\"login\":\"octocat\"},\"description\":\"\",\"isFork\":false,\"isArchived\":false,\"isPrivate\":false,\"stargazerCount\":12,\"repositoryTopics\":[]}\n" +
		"EOF\n" +
		"  exit 0\n" +
		"fi\n" +
		"if [ \"$1\" = \"api\" ]; then\n" +
		"  case \"$2\" in\n" +
		"    */languages)\n" +
		"      printf '{\"Go\":4096,\"Shell\":128}'\n" +
		"      exit 0\n" +
		"      ;;\n" +
		"    */readme)\n" +
		"      cat <<'EOF'\n" +
		"# Example\n" +
		"\n" +
		"A command line tool that turns markdown notes into static sites.\n" +
		"\n" +
		"## Installation\n" +
		"\n" +
		"Install with go install.\n" +
		"EOF\n" +
		"      exit 0\n" +
		"      ;;\n" +
		"    */topics)\n" +
		"      cat > /dev/null\n" +
		"      printf '{\"names\":[]}'\n" +
		"      exit 0\n" +
		"      ;;\n" +
		"    *)\n" +
		"      printf '{}'\n" +
		"      exit 0\n" +
		"      ;;\n" +
		"  esac\n" +
		"fi\n" +
		"exit 0\n"
)

func installGitHubStub(testInstance *testing.T) (string, string) {
	testInstance.Helper()

	tempDirectory := testInstance.TempDir()
	stubDirectory := filepath.Join(tempDirectory, optimizeIntegrationStubBinDirName)
	require.NoError(testInstance, os.Mkdir(stubDirectory, 0o755))
	stubPath := filepath.Join(stubDirectory, optimizeIntegrationStubExecutableName)
	require.NoError(testInstance, os.WriteFile(stubPath, []byte(optimizeIntegrationStubScript), 0o755))

	stubLogPath := filepath.Join(tempDirectory, optimizeIntegrationStubLogFileName)
	extendedPath := stubDirectory + string(os.PathListSeparator) + os.Getenv("PATH")
	return stubLogPath, extendedPath
}

func TestOptimizeCommandIntegration(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	repositoryRoot := filepath.Dir(workingDirectory)

	testCases := []struct {
		name                   string
		extraArguments         []string
		expectedOutputSnippets []string
		expectedStubCalls      []string
		forbiddenStubCalls     []string
	}{
		{
			name: optimizeIntegrationDryRunCaseName,
			expectedOutputSnippets: []string{
				optimizeIntegrationPreviewSnippet,
				optimizeIntegrationProviderSnippet,
			},
			forbiddenStubCalls: []string{
				optimizeIntegrationPatchSnippet,
				optimizeIntegrationPutSnippet,
			},
		},
		{
			name:           optimizeIntegrationApplyCaseName,
			extraArguments: []string{optimizeIntegrationApplyFlag},
			expectedOutputSnippets: []string{
				optimizeIntegrationAppliedSnippet,
				optimizeIntegrationProviderSnippet,
			},
			expectedStubCalls: []string{
				optimizeIntegrationPatchSnippet,
				optimizeIntegrationPutSnippet,
			},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			stubLogPath, extendedPath := installGitHubStub(subtest)

			arguments := []string{
				optimizeIntegrationRunSubcommand,
				optimizeIntegrationModulePathConstant,
				optimizeIntegrationCommandName,
				optimizeIntegrationRepoFlag,
				optimizeIntegrationRepositoryConstant,
				optimizeIntegrationProviderFlag,
				optimizeIntegrationProviderConstant,
				optimizeIntegrationLogLevelFlag,
				optimizeIntegrationErrorLevel,
			}
			arguments = append(arguments, testCase.extraArguments...)

			commandOptions := integrationCommandOptions{
				PathVariable:     extendedPath,
				ExtraEnvironment: []string{optimizeIntegrationStubLogEnvName + "=" + stubLogPath},
			}
			outputText := runIntegrationCommand(subtest, repositoryRoot, commandOptions, optimizeIntegrationTimeout, arguments)

			for _, expectedSnippet := range testCase.expectedOutputSnippets {
				require.Contains(subtest, outputText, expectedSnippet)
			}

			stubLogBytes, readError := os.ReadFile(stubLogPath)
			require.NoError(subtest, readError)
			stubLogText := string(stubLogBytes)
			require.True(subtest, strings.Contains(stubLogText, "repo view octocat/example"), stubLogText)

			for _, expectedCall := range testCase.expectedStubCalls {
				require.Contains(subtest, stubLogText, expectedCall)
			}
			for _, forbiddenCall := range testCase.forbiddenStubCalls {
				require.NotContains(subtest, stubLogText, forbiddenCall)
			}
		})
	}
}
