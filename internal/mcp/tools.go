package mcp

import "github.com/cid-docencia/wa-responder/internal/biz/domain"

// Tool names
const (
	ToolListConditions  = "list_conditions"
	ToolGetCondition    = "get_condition"
	ToolPutCondition    = "put_condition"
	ToolDeleteCondition = "delete_condition"
	ToolGetChatHistory  = "get_chat_history"
	ToolGetBotStatus    = "get_bot_status"
	ToolSetBotStatus    = "set_bot_status"
	ToolSendMessage     = "send_message"
)

// ToolDefinition names and describes an MCP tool
type ToolDefinition struct {
	Name        string
	Description string
}

// GetToolDefinitions returns all available MCP tool definitions
func GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolListConditions,
			Description: "List the auto-reply rule table in table order. Each condition has an id, reply text, optional reply buttons and trigger keywords. The condition with id 'default' is the welcome and fallback reply.",
		},
		{
			Name:        ToolGetCondition,
			Description: "Get a single auto-reply condition by id.",
		},
		{
			Name:        ToolPutCondition,
			Description: "Create or replace an auto-reply condition. A replaced condition keeps its position in the table. Button ids must be unique and should name the condition that answers the button.",
		},
		{
			Name:        ToolDeleteCondition,
			Description: "Delete an auto-reply condition by id.",
		},
		{
			Name:        ToolGetChatHistory,
			Description: "Get the conversation log of a WhatsApp sender, oldest first.",
		},
		{
			Name:        ToolGetBotStatus,
			Description: "Check whether automated replies are enabled for a sender and when a disablement expires.",
		},
		{
			Name:        ToolSetBotStatus,
			Description: "Enable or disable automated replies for a sender, e.g. while an operator takes over the conversation. A disablement can expire after a number of minutes.",
		},
		{
			Name:        ToolSendMessage,
			Description: "Send a text message to a sender as the operator. The message is recorded in the chat history.",
		},
	}
}

// ButtonView is a reply button of a condition
type ButtonView struct {
	ID    string `json:"id" jsonschema:"Button id, usually the id of the condition that answers it"`
	Title string `json:"title" jsonschema:"Button label, at most 20 characters are shown"`
}

// ConditionView is a condition as exchanged with tools
type ConditionView struct {
	ID       string       `json:"id" jsonschema:"Condition id"`
	Text     string       `json:"text,omitempty" jsonschema:"Reply text"`
	Buttons  []ButtonView `json:"buttons,omitempty" jsonschema:"Reply buttons in display order"`
	Keywords []string     `json:"keywords,omitempty" jsonschema:"Trigger keywords, matched case-insensitively"`
}

func toConditionView(c *domain.Condition) ConditionView {
	view := ConditionView{ID: c.ID, Text: c.Text, Keywords: c.Keywords}
	for _, btn := range c.Buttons {
		view.Buttons = append(view.Buttons, ButtonView{ID: btn.ID, Title: btn.Title})
	}
	return view
}

func (v ConditionView) toDomain() *domain.Condition {
	c := &domain.Condition{ID: v.ID, Text: v.Text, Keywords: v.Keywords}
	for _, btn := range v.Buttons {
		c.Buttons = append(c.Buttons, domain.Button{ID: btn.ID, Title: btn.Title})
	}
	return c
}

// ============ Inputs ============

// ListConditionsInput is the input for list_conditions
type ListConditionsInput struct{}

// ConditionIDInput is the input for get_condition and delete_condition
type ConditionIDInput struct {
	ID string `json:"id" jsonschema:"Condition id"`
}

// PutConditionInput is the input for put_condition
type PutConditionInput struct {
	Condition ConditionView `json:"condition" jsonschema:"The condition to store"`
}

// PhoneInput is the input for get_chat_history and get_bot_status
type PhoneInput struct {
	PhoneNumber string `json:"phone_number" jsonschema:"Sender phone number in international format without '+'"`
}

// SetBotStatusInput is the input for set_bot_status
type SetBotStatusInput struct {
	PhoneNumber    string `json:"phone_number" jsonschema:"Sender phone number in international format without '+'"`
	Enabled        bool   `json:"enabled" jsonschema:"Whether automated replies are enabled"`
	ExpiresMinutes int    `json:"expires_minutes,omitempty" jsonschema:"When disabling, re-enable automatically after this many minutes (0 for never)"`
}

// SendMessageInput is the input for send_message
type SendMessageInput struct {
	PhoneNumber string `json:"phone_number" jsonschema:"Recipient phone number in international format without '+'"`
	Message     string `json:"message" jsonschema:"The message text to send"`
}

// ============ Outputs ============

// ConditionListOutput is the output for list_conditions
type ConditionListOutput struct {
	Conditions []ConditionView `json:"conditions"`
}

// ChatHistoryOutput is the output for get_chat_history
type ChatHistoryOutput struct {
	PhoneNumber string      `json:"phone_number"`
	Messages    []ChatEntry `json:"messages"`
}

// BotStatusOutput is the output for get_bot_status
type BotStatusOutput struct {
	Enabled          bool   `json:"enabled"`
	ExpiresInMinutes *int64 `json:"expires_in_minutes,omitempty"`
}

// ResultOutput reports the outcome of a write tool
type ResultOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
