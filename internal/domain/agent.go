package domain

type AgentType string

const (
	AgentImage     AgentType = "IMAGE"
	AgentText      AgentType = "TEXT"
	AgentMusic     AgentType = "MUSIC"
	AgentDNA       AgentType = "DNA"
	AgentEmotion   AgentType = "EMOTION"
	AgentSearch    AgentType = "SEARCH"
	AgentAnalytics AgentType = "ANALYTICS"
)

// AgentTypes in catalog order.
var AgentTypes = []AgentType{
	AgentImage, AgentText, AgentMusic, AgentDNA,
	AgentEmotion, AgentSearch, AgentAnalytics,
}

type AgentStatus string

const (
	AgentStatusReady     AgentStatus = "READY"
	AgentStatusRunning   AgentStatus = "RUNNING"
	AgentStatusCompleted AgentStatus = "COMPLETED"
	AgentStatusFailed    AgentStatus = "FAILED"
	AgentStatusCancelled AgentStatus = "CANCELLED"
)

type ExecutionMode string

const (
	ExecutionModeSingle ExecutionMode = "SINGLE"
	ExecutionModeAll    ExecutionMode = "ALL"
	ExecutionModeCustom ExecutionMode = "CUSTOM"
	ExecutionModeChain  ExecutionMode = "CHAIN"
)

// AgentConfig is the static catalog entry for one agent.
type AgentConfig struct {
	AgentType   AgentType      `json:"agent_type"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Enabled     bool           `json:"enabled"`
	Parameters  map[string]any `json:"parameters"`
}

// AgentProgress tracks one agent inside an execution. Timestamps are unix
// milliseconds.
type AgentProgress struct {
	AgentType   AgentType      `json:"agent_type"`
	Status      AgentStatus    `json:"status"`
	Progress    float64        `json:"progress"`
	CurrentStep string         `json:"current_step"`
	StartedAt   *int64         `json:"started_at"`
	CompletedAt *int64         `json:"completed_at"`
	Error       *string        `json:"error"`
	Result      map[string]any `json:"result"`
}

// ExecutionResult groups the agents run under one execution id.
type ExecutionResult struct {
	ExecutionID string                        `json:"execution_id"`
	Mode        ExecutionMode                 `json:"mode"`
	Agents      map[AgentType]*AgentProgress  `json:"agents"`
	StartedAt   int64                         `json:"started_at"`
	CompletedAt *int64                        `json:"completed_at"`
	TotalTimeMS *int64                        `json:"total_time_ms"`
	Success     bool                          `json:"success"`
}

// AgentPreset is a saved agent selection with optional chain ordering.
type AgentPreset struct {
	ID            string                       `json:"id"`
	Name          string                       `json:"name"`
	Description   string                       `json:"description"`
	EnabledAgents []AgentType                  `json:"enabled_agents"`
	Parameters    map[AgentType]map[string]any `json:"parameters"`
	ChainConfig   []AgentType                  `json:"chain_config"`
	CreatedAt     int64                        `json:"created_at"`
}
