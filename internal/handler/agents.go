package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
	"github.com/morningstarxcdcode/dgc-platform/internal/dto"
	"github.com/morningstarxcdcode/dgc-platform/internal/ws"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// agentProgress streams per-agent progress frames to agent websocket clients.
func (h *Handler) agentProgress(agent domain.AgentType, pct float64, step string) {
	h.hub.BroadcastToType(ws.TypeAgents, map[string]any{
		"type":      "agent_progress",
		"agent":     string(agent),
		"progress":  pct,
		"step":      step,
		"timestamp": time.Now().Unix(),
	})
}

func (h *Handler) parseAgentTypes(raw []string) ([]domain.AgentType, error) {
	agents := make([]domain.AgentType, 0, len(raw))
	for _, name := range raw {
		at := domain.AgentType(strings.ToUpper(name))
		if !h.agents.ValidAgent(at) {
			return nil, domain.ErrAgentNotFound
		}
		agents = append(agents, at)
	}
	return agents, nil
}

func (h *Handler) ListAgents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"agents": h.agents.Agents()})
}

func (h *Handler) ExecuteAgents(c *gin.Context) {
	var req dto.AgentExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := domain.ExecutionMode(strings.ToUpper(req.Mode))
	if req.Mode == "" {
		mode = domain.ExecutionModeCustom
	}

	agents, err := h.parseAgentTypes(req.AgentTypes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := req.InputData
	if input == nil {
		input = map[string]any{}
	}

	var result *domain.ExecutionResult
	switch {
	case mode == domain.ExecutionModeAll:
		result, err = h.agents.ExecuteAll(input, h.agentProgress)
	case mode == domain.ExecutionModeChain && len(agents) > 0:
		result, err = h.agents.ExecuteChain(agents, input, h.agentProgress)
	case len(agents) == 1:
		result, err = h.agents.ExecuteSingle(agents[0], input, h.agentProgress)
	case len(agents) > 1:
		result, err = h.agents.ExecuteCustom(agents, input, h.agentProgress)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "must specify agent_types or use mode=ALL"})
		return
	}
	if err != nil {
		log.WithError(err).Error("agent execution failed")
		if errors.Is(err, domain.ErrAgentNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ExecuteSingleAgent(c *gin.Context) {
	at := domain.AgentType(strings.ToUpper(c.Param("agent_type")))
	if !h.agents.ValidAgent(at) {
		mapDomainError(c, domain.ErrAgentNotFound)
		return
	}

	// The input body is optional.
	input := map[string]any{}
	_ = c.ShouldBindJSON(&input)

	result, err := h.agents.ExecuteSingle(at, input, h.agentProgress)
	if err != nil {
		log.WithError(err).Error("agent execution failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetExecution(c *gin.Context) {
	result, err := h.agents.GetExecution(c.Param("execution_id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) CancelExecution(c *gin.Context) {
	executionID := c.Param("execution_id")

	if err := h.agents.Cancel(executionID); err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled", "execution_id": executionID})
}

func (h *Handler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": h.agents.ListPresets()})
}

func (h *Handler) CreatePreset(c *gin.Context) {
	var req dto.PresetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enabled, err := h.parseAgentTypes(req.EnabledAgents)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chain, err := h.parseAgentTypes(req.ChainConfig)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parameters := make(map[domain.AgentType]map[string]any, len(req.Parameters))
	for name, params := range req.Parameters {
		parameters[domain.AgentType(strings.ToUpper(name))] = params
	}

	preset := &domain.AgentPreset{
		Name:          req.Name,
		Description:   req.Description,
		EnabledAgents: enabled,
		Parameters:    parameters,
		ChainConfig:   chain,
	}

	id := h.agents.SavePreset(preset)
	c.JSON(http.StatusOK, gin.H{"id": id, "preset": preset})
}

func (h *Handler) GetPreset(c *gin.Context) {
	preset, err := h.agents.GetPreset(c.Param("preset_id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, preset)
}

func (h *Handler) DeletePreset(c *gin.Context) {
	presetID := c.Param("preset_id")

	if err := h.agents.DeletePreset(presetID); err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "preset_id": presetID})
}
