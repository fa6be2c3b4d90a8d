// Package mcptools exposes the translator as MCP tools over stdio.
//
// Each tool follows the same shape: a struct holding its dependencies,
// Definition() for the schema and Handle() for the call.
package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/AkashAS-coder/Clarity-Care/translator"
)

// NewServer registers every tool on a fresh MCP server.
func NewServer(version string, orch *translator.Orchestrator) *server.MCPServer {
	s := server.NewMCPServer(
		"clarity-care",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	translateTool := NewTranslateTool(orch)
	s.AddTool(translateTool.Definition(), translateTool.Handle)

	statsTool := NewStatsTool()
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	samplesTool := NewSamplesTool()
	s.AddTool(samplesTool.Definition(), samplesTool.Handle)

	return s
}

// TranslateTool handles the translate_note tool.
type TranslateTool struct {
	orch *translator.Orchestrator
}

func NewTranslateTool(orch *translator.Orchestrator) *TranslateTool {
	return &TranslateTool{orch: orch}
}

func (t *TranslateTool) Definition() mcp.Tool {
	return mcp.NewTool("translate_note",
		mcp.WithDescription("Rewrite a clinical shorthand note into a plain-language summary with a next-steps checklist."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The clinical note, e.g. 'Pt w/ HTN and DM2 reports dyspnea'"),
		),
		mcp.WithString("audience",
			mcp.Description("Reader: adult, teen, caregiver or esl"),
			mcp.Enum(translator.Audiences()...),
		),
		mcp.WithString("tone",
			mcp.Description("Tone of the headline: warm, direct or coach"),
			mcp.Enum(translator.Tones()...),
		),
		mcp.WithBoolean("use_ai",
			mcp.Description("Ask the configured model first; falls back to the local rules on failure"),
		),
	)
}

func (t *TranslateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	out := t.orch.SubmitNote(ctx, text, translator.Options{
		Audience: req.GetString("audience", translator.DefaultAudience),
		Tone:     req.GetString("tone", translator.DefaultTone),
		UseAI:    req.GetBool("use_ai", false),
	})
	if out.Result == nil {
		return mcp.NewToolResultError("nothing to translate"), nil
	}

	var sb strings.Builder
	sb.WriteString("## Plain-language summary\n\n")
	sb.WriteString(out.Result.Simple + "\n\n")
	sb.WriteString("## Next steps\n\n")
	for _, a := range out.Result.Actions {
		sb.WriteString("- " + a + "\n")
	}
	sb.WriteString("\n" + out.Status + "\n")
	if out.Degraded {
		sb.WriteString("AI service unavailable. Used standard translation.\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// StatsTool handles the readability_stats tool.
type StatsTool struct{}

func NewStatsTool() *StatsTool {
	return &StatsTool{}
}

func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("readability_stats",
		mcp.WithDescription("Word count, reading time and a Flesch-style clarity score for a piece of text."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Text to score"),
		),
	)
}

func (t *StatsTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := translator.ComputeStats(req.GetString("text", ""))

	var sb strings.Builder
	sb.WriteString("## Readability\n\n")
	sb.WriteString(fmt.Sprintf("- **Words**: %d\n", st.WordCount))
	sb.WriteString(fmt.Sprintf("- **Sentences**: %d\n", st.SentenceCount))
	sb.WriteString(fmt.Sprintf("- **Syllables**: %d\n", st.SyllableCount))
	sb.WriteString(fmt.Sprintf("- **Reading ease**: %d\n", st.ReadingEase))
	sb.WriteString(fmt.Sprintf("- **Read time**: %d min\n", st.ReadTimeMinutes))
	sb.WriteString(fmt.Sprintf("- **Clarity**: %s\n", st.Clarity))
	return mcp.NewToolResultText(sb.String()), nil
}

// SamplesTool handles the list_samples tool.
type SamplesTool struct{}

func NewSamplesTool() *SamplesTool {
	return &SamplesTool{}
}

func (t *SamplesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_samples",
		mcp.WithDescription("List example clinical notes to try with translate_note."),
	)
}

func (t *SamplesTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	for _, s := range translator.Samples() {
		sb.WriteString(fmt.Sprintf("### %s\n\n%s\n\n", s.Label, s.Text))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
