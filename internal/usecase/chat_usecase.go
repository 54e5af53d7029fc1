package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"talenthub/internal/domain/chat"
	"talenthub/internal/domain/resume"
	"talenthub/internal/infrastructure/llm"
	"talenthub/internal/repository"

	"github.com/google/uuid"
)

const chatSystemPrompt = `You are TalentHub's assistant. You help candidates with their resumes and with finding jobs on the platform.

You may call one of the available tools to look up the user's resumes, list the currently open jobs, or create a resume for the user. Answer based only on tool results and the conversation; never invent resumes or jobs. Keep replies short and concrete.`

// ChatTurn is one prior exchange the client replays for context.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatUsecase interface {
	Ask(ctx context.Context, userID uuid.UUID, query string, history []ChatTurn) (string, error)
}

type Chat struct {
	resumes repository.ResumeRepository
	jobs    repository.JobRepository
	llm     llm.Client
	logger  *log.Logger
}

func NewChatUsecase(resumes repository.ResumeRepository, jobs repository.JobRepository, llmClient llm.Client, logger *log.Logger) *Chat {
	return &Chat{resumes: resumes, jobs: jobs, llm: llmClient, logger: logger}
}

var chatToolDefs = []llm.ToolDef{
	{
		Name:        string(chat.ToolGetUserResumes),
		Description: "List the resumes the current user has created, including skills and completion percentage.",
		Parameters:  json.RawMessage(`{"type":"object","properties":{}}`),
	},
	{
		Name:        string(chat.ToolGetActiveJobs),
		Description: "List the currently active job postings with title, required hard skills and experience level.",
		Parameters:  json.RawMessage(`{"type":"object","properties":{}}`),
	},
	{
		Name:        string(chat.ToolCreateResume),
		Description: "Create a new resume for the current user.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Resume title"},
				"full_name": {"type": "string", "description": "Candidate full name"},
				"skills": {"type": "array", "items": {"type": "string"}, "description": "Skill names"}
			},
			"required": ["title"]
		}`),
	},
}

// Ask runs at most one tool round: the model may call a single tool, its
// result is appended to the conversation, and one follow-up completion
// produces the user-facing reply. Multi-step tool chains are not supported.
func (u *Chat) Ask(ctx context.Context, userID uuid.UUID, query string, history []ChatTurn) (string, error) {
	if userID == uuid.Nil {
		return "", ErrUnauthorized
	}
	if query == "" {
		return "", ErrInvalidInput
	}

	msgs := []llm.Message{{Role: llm.RoleSystem, Content: chatSystemPrompt}}
	for _, t := range history {
		if t.Role != llm.RoleUser && t.Role != llm.RoleAssistant {
			continue
		}
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Content})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: query})

	reply, err := u.llm.Chat(ctx, msgs, chatToolDefs)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(reply.ToolCalls) == 0 {
		return reply.Content, nil
	}

	// One tool per round; extra calls in the same reply are ignored.
	tc := reply.ToolCalls[0]
	call, err := chat.ParseToolCall(tc.Name, tc.Arguments)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("chat: rejected tool call | user=%s name=%q err=%v", userID, tc.Name, err)
		}
		return "", ErrInternal
	}

	result, err := u.dispatch(ctx, userID, call)
	if err != nil {
		return "", err
	}

	msgs = append(msgs, llm.Message{
		Role:      llm.RoleAssistant,
		ToolCalls: []llm.ToolCall{tc},
	})
	msgs = append(msgs, llm.Message{
		Role:       llm.RoleTool,
		ToolCallID: tc.ID,
		Content:    result,
	})

	final, err := u.llm.Chat(ctx, msgs, nil)
	if err != nil {
		return "", fmt.Errorf("chat follow-up: %w", err)
	}
	return final.Content, nil
}

// dispatch executes the tool with the caller's own identity; tool arguments
// never select a different user.
func (u *Chat) dispatch(ctx context.Context, userID uuid.UUID, call chat.ToolCall) (string, error) {
	switch call.Name {
	case chat.ToolGetUserResumes:
		resumes, err := u.resumes.ListByUserID(ctx, userID)
		if err != nil {
			return "", ErrInternal
		}
		return marshalToolResult(resumes)

	case chat.ToolGetActiveJobs:
		jobs, err := u.jobs.ListActive(ctx)
		if err != nil {
			return "", ErrInternal
		}
		return marshalToolResult(jobs)

	case chat.ToolCreateResume:
		args := call.CreateResume
		rs := resume.Resume{
			ID:     uuid.New(),
			UserID: userID,
			Title:  args.Title,
			PersonalInfo: resume.PersonalInfo{
				FullName: args.FullName,
			},
			Skills: args.Skills,
		}
		rs.CompletionPercentage = rs.CalculateCompletion()
		if err := u.resumes.Create(ctx, rs); err != nil {
			return "", ErrInternal
		}
		return marshalToolResult(rs)

	default:
		return "", ErrInternal
	}
}

func marshalToolResult(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", ErrInternal
	}
	return string(b), nil
}
