package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ToolName is the closed set of operations the assistant may invoke.
type ToolName string

const (
	ToolGetUserResumes ToolName = "get_user_resumes"
	ToolGetActiveJobs  ToolName = "get_active_jobs"
	ToolCreateResume   ToolName = "create_resume"
)

var ErrUnknownTool = errors.New("unknown tool")
var ErrInvalidToolArgs = errors.New("invalid tool arguments")

// ToolCall is a tagged variant: exactly one of the argument fields is set,
// matching Name.
type ToolCall struct {
	Name ToolName

	CreateResume *CreateResumeArgs
}

type CreateResumeArgs struct {
	Title    string   `json:"title"`
	FullName string   `json:"full_name"`
	Skills   []string `json:"skills"`
}

// ParseToolCall validates a model-issued function call into a typed variant.
// Unknown names and malformed argument JSON are rejected rather than
// dispatched on the raw strings.
func ParseToolCall(name, argsJSON string) (ToolCall, error) {
	switch ToolName(strings.TrimSpace(name)) {
	case ToolGetUserResumes:
		return ToolCall{Name: ToolGetUserResumes}, nil

	case ToolGetActiveJobs:
		return ToolCall{Name: ToolGetActiveJobs}, nil

	case ToolCreateResume:
		var args CreateResumeArgs
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return ToolCall{}, fmt.Errorf("%w: %v", ErrInvalidToolArgs, err)
		}
		if strings.TrimSpace(args.Title) == "" {
			return ToolCall{}, fmt.Errorf("%w: title is required", ErrInvalidToolArgs)
		}
		return ToolCall{Name: ToolCreateResume, CreateResume: &args}, nil

	default:
		return ToolCall{}, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
}
