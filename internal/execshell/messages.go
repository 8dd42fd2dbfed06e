package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	githubRepoSubcommandNameConstant      = "repo"
	githubRepoListSubcommandNameConstant  = "list"
	githubRepoViewSubcommandNameConstant  = "view"
	githubAPICommandNameConstant          = "api"
	githubMethodFlagConstant              = "-X"
	githubPatchMethodConstant             = "PATCH"
	githubPutMethodConstant               = "PUT"
	githubReposEndpointPrefixConstant     = "repos/"
	githubLanguagesEndpointSuffixConstant = "/languages"
	githubTopicsEndpointSuffixConstant    = "/topics"
	githubReadmeEndpointSuffixConstant    = "/readme"
)

const (
	githubRepoListStartTemplateConstant            = "Listing repositories for %s"
	githubRepoListSuccessTemplateConstant          = "Listed repositories for %s"
	githubRepoListFailureTemplateConstant          = "Failed to list repositories for %s (exit code %d%s)"
	githubRepoListExecutionFailureTemplateConstant = "Unable to list repositories for %s: %s"

	githubRepoViewStartTemplateConstant            = "Retrieving repository details for %s"
	githubRepoViewSuccessTemplateConstant          = "Retrieved repository details for %s"
	githubRepoViewFailureTemplateConstant          = "Failed to retrieve repository details for %s (exit code %d%s)"
	githubRepoViewExecutionFailureTemplateConstant = "Unable to retrieve repository details for %s: %s"

	githubLanguagesStartTemplateConstant            = "Fetching language statistics for %s"
	githubLanguagesSuccessTemplateConstant          = "Fetched language statistics for %s"
	githubLanguagesFailureTemplateConstant          = "Failed to fetch language statistics for %s (exit code %d%s)"
	githubLanguagesExecutionFailureTemplateConstant = "Unable to fetch language statistics for %s: %s"

	githubReadmeStartTemplateConstant            = "Fetching README for %s"
	githubReadmeSuccessTemplateConstant          = "Fetched README for %s"
	githubReadmeFailureTemplateConstant          = "Failed to fetch README for %s (exit code %d%s)"
	githubReadmeExecutionFailureTemplateConstant = "Unable to fetch README for %s: %s"

	githubTopicsReadStartTemplateConstant            = "Fetching topics for %s"
	githubTopicsReadSuccessTemplateConstant          = "Fetched topics for %s"
	githubTopicsReadFailureTemplateConstant          = "Failed to fetch topics for %s (exit code %d%s)"
	githubTopicsReadExecutionFailureTemplateConstant = "Unable to fetch topics for %s: %s"

	githubTopicsUpdateStartTemplateConstant            = "Replacing topics for %s"
	githubTopicsUpdateSuccessTemplateConstant          = "Replaced topics for %s"
	githubTopicsUpdateFailureTemplateConstant          = "Failed to replace topics for %s (exit code %d%s)"
	githubTopicsUpdateExecutionFailureTemplateConstant = "Unable to replace topics for %s: %s"

	githubDescriptionUpdateStartTemplateConstant            = "Updating description for %s"
	githubDescriptionUpdateSuccessTemplateConstant          = "Updated description for %s"
	githubDescriptionUpdateFailureTemplateConstant          = "Failed to update description for %s (exit code %d%s)"
	githubDescriptionUpdateExecutionFailureTemplateConstant = "Unable to update description for %s: %s"
)

// messageTemplates groups the four lifecycle templates for one operation.
type messageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

// CommandMessageFormatter builds human-readable messages for command
// lifecycle events, recognizing the GitHub CLI invocations this tool issues.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name == CommandGitHub {
		if templates, subject, recognized := formatter.describeGitHubCommand(command.Details.Arguments); recognized {
			return formatter.renderTemplates(templates, subject, result, failure, stage)
		}
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitHubCommand(arguments []string) (messageTemplates, string, bool) {
	if len(arguments) < 2 {
		return messageTemplates{}, emptyStringConstant, false
	}
	primaryArgument := strings.TrimSpace(arguments[0])
	secondaryArgument := strings.TrimSpace(arguments[1])

	if primaryArgument == githubRepoSubcommandNameConstant {
		subject := fallbackUnknownValueLabelConstant
		if len(arguments) > 2 {
			subject = strings.TrimSpace(arguments[2])
		}
		switch secondaryArgument {
		case githubRepoListSubcommandNameConstant:
			return messageTemplates{
				start:            githubRepoListStartTemplateConstant,
				success:          githubRepoListSuccessTemplateConstant,
				failure:          githubRepoListFailureTemplateConstant,
				executionFailure: githubRepoListExecutionFailureTemplateConstant,
			}, subject, true
		case githubRepoViewSubcommandNameConstant:
			return messageTemplates{
				start:            githubRepoViewStartTemplateConstant,
				success:          githubRepoViewSuccessTemplateConstant,
				failure:          githubRepoViewFailureTemplateConstant,
				executionFailure: githubRepoViewExecutionFailureTemplateConstant,
			}, subject, true
		}
		return messageTemplates{}, emptyStringConstant, false
	}

	if primaryArgument != githubAPICommandNameConstant {
		return messageTemplates{}, emptyStringConstant, false
	}

	endpoint := secondaryArgument
	repository := formatter.extractRepositoryFromEndpoint(endpoint)
	method := strings.TrimSpace(findFlagValue(arguments, githubMethodFlagConstant))

	switch {
	case strings.HasSuffix(endpoint, githubLanguagesEndpointSuffixConstant):
		return messageTemplates{
			start:            githubLanguagesStartTemplateConstant,
			success:          githubLanguagesSuccessTemplateConstant,
			failure:          githubLanguagesFailureTemplateConstant,
			executionFailure: githubLanguagesExecutionFailureTemplateConstant,
		}, repository, true
	case strings.HasSuffix(endpoint, githubReadmeEndpointSuffixConstant):
		return messageTemplates{
			start:            githubReadmeStartTemplateConstant,
			success:          githubReadmeSuccessTemplateConstant,
			failure:          githubReadmeFailureTemplateConstant,
			executionFailure: githubReadmeExecutionFailureTemplateConstant,
		}, repository, true
	case strings.HasSuffix(endpoint, githubTopicsEndpointSuffixConstant):
		if method == githubPutMethodConstant {
			return messageTemplates{
				start:            githubTopicsUpdateStartTemplateConstant,
				success:          githubTopicsUpdateSuccessTemplateConstant,
				failure:          githubTopicsUpdateFailureTemplateConstant,
				executionFailure: githubTopicsUpdateExecutionFailureTemplateConstant,
			}, repository, true
		}
		return messageTemplates{
			start:            githubTopicsReadStartTemplateConstant,
			success:          githubTopicsReadSuccessTemplateConstant,
			failure:          githubTopicsReadFailureTemplateConstant,
			executionFailure: githubTopicsReadExecutionFailureTemplateConstant,
		}, repository, true
	case method == githubPatchMethodConstant:
		return messageTemplates{
			start:            githubDescriptionUpdateStartTemplateConstant,
			success:          githubDescriptionUpdateSuccessTemplateConstant,
			failure:          githubDescriptionUpdateFailureTemplateConstant,
			executionFailure: githubDescriptionUpdateExecutionFailureTemplateConstant,
		}, repository, true
	}

	return messageTemplates{}, emptyStringConstant, false
}

func (formatter CommandMessageFormatter) renderTemplates(templates messageTemplates, subject string, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, subject)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, subject)
	case messageStageFailure:
		return fmt.Sprintf(templates.failure, subject, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(templates.executionFailure, subject, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) extractRepositoryFromEndpoint(endpoint string) string {
	trimmedEndpoint := strings.TrimPrefix(strings.TrimSpace(endpoint), githubReposEndpointPrefixConstant)
	segments := strings.Split(trimmedEndpoint, "/")
	if len(segments) < 2 || len(segments[0]) == 0 || len(segments[1]) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return segments[0] + "/" + segments[1]
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
