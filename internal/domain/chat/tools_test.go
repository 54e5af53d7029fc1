package chat

import (
	"errors"
	"testing"
)

func TestParseToolCall_NoArgTools(t *testing.T) {
	for _, name := range []ToolName{ToolGetUserResumes, ToolGetActiveJobs} {
		call, err := ParseToolCall(string(name), "{}")
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", name, err)
		}
		if call.Name != name || call.CreateResume != nil {
			t.Fatalf("%s: unexpected call %+v", name, call)
		}
	}
}

func TestParseToolCall_CreateResume(t *testing.T) {
	call, err := ParseToolCall(string(ToolCreateResume), `{"title":"CV","full_name":"Ada","skills":["Go"]}`)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if call.CreateResume == nil || call.CreateResume.Title != "CV" || len(call.CreateResume.Skills) != 1 {
		t.Fatalf("unexpected args %+v", call.CreateResume)
	}
}

func TestParseToolCall_CreateResumeMissingTitle(t *testing.T) {
	if _, err := ParseToolCall(string(ToolCreateResume), `{"full_name":"Ada"}`); !errors.Is(err, ErrInvalidToolArgs) {
		t.Fatalf("expected ErrInvalidToolArgs, got %v", err)
	}
}

func TestParseToolCall_CreateResumeBadJSON(t *testing.T) {
	if _, err := ParseToolCall(string(ToolCreateResume), `{"title":`); !errors.Is(err, ErrInvalidToolArgs) {
		t.Fatalf("expected ErrInvalidToolArgs, got %v", err)
	}
}

func TestParseToolCall_UnknownTool(t *testing.T) {
	if _, err := ParseToolCall("delete_user", "{}"); !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
}
