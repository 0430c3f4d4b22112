// ABOUTME: MCP prompts for common note workflows.
// ABOUTME: Each prompt steers the agent toward the note tools.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-note",
		Description: "Generate a summary of an existing note",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "note_id",
				Description: "ID of the note to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeNotePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "create-meeting-notes",
		Description: "Create structured meeting notes with attendees, agenda, and action items",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "meeting_title",
				Description: "Title of the meeting",
				Required:    false,
			},
		},
	}, s.getMeetingNotesPrompt)
}

func (s *Server) getSummarizeNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	noteID := req.Params.Arguments["note_id"]
	if noteID == "" {
		return nil, fmt.Errorf("note_id argument is required")
	}
	if _, err := s.resolve(noteID); err != nil {
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return userPrompt(fmt.Sprintf(`Please summarize the note with ID: %s

1. Use the get_note tool to retrieve the note content
2. Create a concise summary covering the main topic, key points, and any action items
3. Use the update_note tool to put a "Summary" section at the top of the content`, noteID)), nil
}

func (s *Server) getMeetingNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	title := req.Params.Arguments["meeting_title"]
	if title == "" {
		title = "Meeting"
	}

	return userPrompt(fmt.Sprintf(`Create meeting notes for: %s

Structure the content with these sections:

## Attendees
## Agenda
## Discussion Notes
## Decisions Made
## Action Items
- [ ] [Action] - @[Owner] - [Due date]

Use the add_note tool with the meeting title as the note title.`, title)), nil
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
