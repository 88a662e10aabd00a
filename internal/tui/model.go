package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"reapo/internal/agent"
	"reapo/internal/editor"
	"reapo/internal/editor/completion"
	"reapo/internal/history"
	"reapo/internal/logger"
	"reapo/internal/tui/components"
)

// slashCommands is the authoritative list of commands the prompt editor
// offers through "/" completion. Keep in sync with the switch in
// handleSlashCommand.
var slashCommands = []completion.Command{
	{Name: "help", Description: "Show all available commands"},
	{Name: "clear", Description: "Clear conversation context"},
	{Name: "editor", Description: "Open external editor ($EDITOR)"},
	{Name: "compact", Description: "Summarize and compact the conversation"},
}

// submitBox is the bridge between editor.Model's synchronous OnSubmit
// callback and bubbletea's Update/Cmd cycle: the callback stashes the
// submitted text here, and Update checks it right after forwarding each key.
type submitBox struct {
	text string
	has  bool
}

// Model represents the Bubble Tea model for the TUI
type Model struct {
	messages []components.Message
	textarea *editor.Model
	submit   *submitBox
	viewport struct {
		width  int
		height int
	}
	agent      *agent.Agent
	client     anthropic.Client
	workingDir string
	history    *history.Store
	ready      bool
	processing bool
	helpModal  *components.HelpModal
}

// AddMessageMsg represents adding a new message to the transcript.
type AddMessageMsg struct {
	Message components.Message
}

// AgentReplyMsg carries the model's response to a submitted prompt.
type AgentReplyMsg struct {
	Content string
	Err     error
}

// SlashCommandMsg represents a slash command to be executed.
type SlashCommandMsg struct {
	Command string
}

// EditorFinishedMsg is sent when the external editor process exits.
type EditorFinishedMsg struct {
	Error error
}

// CompactReplyMsg carries the result of summarizing the conversation.
type CompactReplyMsg struct {
	Summary string
	Err     error
}

// systemPromptContent is set once by RunTUI before the model is constructed.
var systemPromptContent string

// maxHistoryEntries caps how many persisted entries are replayed into the
// editor's in-memory history at startup.
const maxHistoryEntries = 100

// NewModel creates a new TUI model.
func NewModel(client anthropic.Client) Model {
	workingDir, err := os.Getwd()
	if err != nil {
		workingDir = "."
	}

	ta := editor.New(editor.WithPaddingX(1), editor.WithBorderStyle(editor.BorderRounded))
	ta.FocusSet(true)
	ta.SetAutocompleteProvider(completion.NewEngine(slashCommands, workingDir))

	var historyStore *history.Store
	if path, err := history.DefaultPath(); err != nil {
		logger.Debug("history: failed to resolve database path: %v", err)
	} else if store, err := history.Open(path); err != nil {
		logger.Debug("history: failed to open database: %v", err)
	} else {
		historyStore = store
		if entries, err := store.Recent(maxHistoryEntries); err != nil {
			logger.Debug("history: failed to load recent entries: %v", err)
		} else {
			for i := len(entries) - 1; i >= 0; i-- {
				ta.AddToHistory(entries[i])
			}
		}
	}

	box := &submitBox{}
	ta.OnSubmit(func(text string) {
		box.text = text
		box.has = true
		if historyStore != nil {
			if err := historyStore.Append(text); err != nil {
				logger.Debug("history: failed to append entry: %v", err)
			}
		}
	})

	return Model{
		messages:   []components.Message{},
		textarea:   ta,
		submit:     box,
		agent:      agent.NewAgent(&client, systemPromptContent),
		client:     client,
		workingDir: workingDir,
		history:    historyStore,
		helpModal:  components.NewHelpModal(),
	}
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return nil
}

// generateMessageID creates a unique UUIDv7-based message ID.
func generateMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("msg_fallback_%d", time.Now().UnixNano())
	}
	return id.String()
}
