package dto

type AgentExecuteRequest struct {
	AgentTypes []string       `json:"agent_types"`
	InputData  map[string]any `json:"input_data"`
	Mode       string         `json:"mode"`
}

type PresetCreateRequest struct {
	Name          string                    `json:"name" binding:"required,max=100"`
	Description   string                    `json:"description"`
	EnabledAgents []string                  `json:"enabled_agents" binding:"required"`
	Parameters    map[string]map[string]any `json:"parameters"`
	ChainConfig   []string                  `json:"chain_config"`
}

type SearchRequest struct {
	Query      string         `json:"query" binding:"required"`
	Categories []string       `json:"categories"`
	Filters    map[string]any `json:"filters"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
}
