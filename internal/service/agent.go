package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

// ProgressFunc receives per-agent progress updates during an execution.
type ProgressFunc func(agent domain.AgentType, pct float64, step string)

type agentStep struct {
	pct   float64
	step  string
	pause time.Duration
}

type agentSpec struct {
	name        string
	description string
	icon        string
	steps       []agentStep
	result      func(input map[string]any) map[string]any
}

func shortID() string {
	return uuid.New().String()[:8]
}

var agentSpecs = map[domain.AgentType]agentSpec{
	domain.AgentImage: {
		name:        "Image Agent",
		description: "Creates pictures from your words",
		icon:        "🎨",
		steps: []agentStep{
			{10, "Analyzing prompt...", 500 * time.Millisecond},
			{40, "Generating image...", time.Second},
			{80, "Finalizing...", 500 * time.Millisecond},
			{100, "Complete!", 0},
		},
		result: func(input map[string]any) map[string]any {
			return map[string]any{
				"status":       "success",
				"content_type": "IMAGE",
				"prompt":       stringInput(input, "prompt", ""),
				"image_url":    fmt.Sprintf("generated_image_%s.png", shortID()),
				"model":        "stable-diffusion-xl",
			}
		},
	},
	domain.AgentText: {
		name:        "Text Agent",
		description: "Writes stories and descriptions",
		icon:        "📝",
		steps: []agentStep{
			{20, "Processing prompt...", 300 * time.Millisecond},
			{60, "Generating text...", 500 * time.Millisecond},
			{100, "Complete!", 0},
		},
		result: func(input map[string]any) map[string]any {
			prompt := stringInput(input, "prompt", "")
			return map[string]any{
				"status":       "success",
				"content_type": "TEXT",
				"prompt":       prompt,
				"text":         "Generated description for: " + prompt,
				"model":        "gpt-4-turbo",
			}
		},
	},
	domain.AgentMusic: {
		name:        "Music Agent",
		description: "Composes music for your NFTs",
		icon:        "🎵",
		steps: []agentStep{
			{15, "Analyzing musical style...", 500 * time.Millisecond},
			{50, "Composing melody...", 800 * time.Millisecond},
			{85, "Rendering audio...", 500 * time.Millisecond},
			{100, "Complete!", 0},
		},
		result: func(input map[string]any) map[string]any {
			return map[string]any{
				"status":       "success",
				"content_type": "MUSIC",
				"prompt":       stringInput(input, "prompt", "ambient background"),
				"audio_url":    fmt.Sprintf("generated_music_%s.mp3", shortID()),
				"duration":     30,
				"model":        "musicgen-large",
			}
		},
	},
	domain.AgentDNA: {
		name:        "DNA Agent",
		description: "Evolves your content over time",
		icon:        "🧬",
		steps: []agentStep{
			{25, "Analyzing genetic code...", 400 * time.Millisecond},
			{60, "Applying mutations...", 400 * time.Millisecond},
			{100, "Evolution complete!", 0},
		},
		result: func(input map[string]any) map[string]any {
			return map[string]any{
				"status":        "success",
				"original_dna":  stringInput(input, "dna_hash", ""),
				"evolved_dna":   "evolved_" + uuid.New().String()[:16],
				"mutations":     []string{"color_shift", "complexity_increase"},
				"rarity_change": "+5",
			}
		},
	},
	domain.AgentEmotion: {
		name:        "Emotion Agent",
		description: "Responds to your feelings",
		icon:        "💖",
		steps: []agentStep{
			{30, "Detecting emotions...", 300 * time.Millisecond},
			{70, "Generating response...", 300 * time.Millisecond},
			{100, "Complete!", 0},
		},
		result: func(input map[string]any) map[string]any {
			return map[string]any{
				"status":           "success",
				"detected_emotion": "happy",
				"confidence":       0.85,
				"adaptation": map[string]any{
					"color_shift":     45,
					"brightness":      1.2,
					"animation_speed": 1.5,
				},
			}
		},
	},
	domain.AgentSearch: {
		name:        "Search Agent",
		description: "Finds blockchain data instantly",
		icon:        "🔍",
		steps: []agentStep{
			{40, "Searching blockchain...", 300 * time.Millisecond},
			{100, "Search complete!", 0},
		},
		result: func(input map[string]any) map[string]any {
			return map[string]any{
				"status":        "success",
				"query":         stringInput(input, "query", ""),
				"results_count": 42,
				"top_results": []map[string]any{
					{"type": "transaction", "hash": "0xabc..."},
					{"type": "address", "address": "0xdef..."},
					{"type": "nft", "token_id": 123},
				},
			}
		},
	},
	domain.AgentAnalytics: {
		name:        "Analytics Agent",
		description: "Tracks your portfolio performance",
		icon:        "📊",
		steps: []agentStep{
			{20, "Fetching portfolio data...", 300 * time.Millisecond},
			{60, "Analyzing performance...", 400 * time.Millisecond},
			{100, "Analysis complete!", 0},
		},
		result: func(input map[string]any) map[string]any {
			return map[string]any{
				"status":         "success",
				"address":        stringInput(input, "address", ""),
				"total_value":    "5.25 ETH",
				"nft_count":      12,
				"roi":            "+15.5%",
				"top_performing": "Living Art #42",
			}
		},
	},
}

func stringInput(input map[string]any, key, fallback string) string {
	if v, ok := input[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// AgentController orchestrates the seven simulated agents: one at a time,
// all at once, a custom parallel set, or a sequential chain that feeds
// each agent's output into the next.
type AgentController struct {
	mu         sync.RWMutex
	executions map[string]*domain.ExecutionResult
	presets    map[string]*domain.AgentPreset
	cancelled  map[string]bool

	// sleep is swapped for a no-op in tests.
	sleep func(time.Duration)
}

func NewAgentController() *AgentController {
	return &AgentController{
		executions: make(map[string]*domain.ExecutionResult),
		presets:    make(map[string]*domain.AgentPreset),
		cancelled:  make(map[string]bool),
		sleep:      time.Sleep,
	}
}

func nowMS() int64 {
	return time.Now().UnixMilli()
}

// Agents returns the static agent catalog.
func (c *AgentController) Agents() []domain.AgentConfig {
	configs := make([]domain.AgentConfig, 0, len(domain.AgentTypes))
	for _, at := range domain.AgentTypes {
		spec := agentSpecs[at]
		configs = append(configs, domain.AgentConfig{
			AgentType:   at,
			Name:        spec.name,
			Description: spec.description,
			Icon:        spec.icon,
			Enabled:     true,
			Parameters:  map[string]any{},
		})
	}
	return configs
}

func (c *AgentController) ValidAgent(at domain.AgentType) bool {
	_, ok := agentSpecs[at]
	return ok
}

// runAgent walks the agent's scripted steps and fills in its progress
// record. It stops early when the execution is cancelled.
func (c *AgentController) runAgent(executionID string, at domain.AgentType, input map[string]any, progress *domain.AgentProgress, onProgress ProgressFunc) map[string]any {
	spec := agentSpecs[at]
	for _, step := range spec.steps {
		if c.isCancelled(executionID) {
			return map[string]any{"status": "cancelled"}
		}
		c.mu.Lock()
		progress.Progress = step.pct
		progress.CurrentStep = step.step
		c.mu.Unlock()
		if onProgress != nil {
			onProgress(at, step.pct, step.step)
		}
		if step.pause > 0 {
			c.sleep(step.pause)
		}
	}
	return spec.result(input)
}

func (c *AgentController) isCancelled(executionID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cancelled[executionID]
}

// ExecuteSingle runs one agent.
func (c *AgentController) ExecuteSingle(at domain.AgentType, input map[string]any, onProgress ProgressFunc) (*domain.ExecutionResult, error) {
	if !c.ValidAgent(at) {
		return nil, domain.ErrAgentNotFound
	}
	result, err := c.executeParallel(domain.ExecutionModeSingle, []domain.AgentType{at}, input, onProgress)
	return result, err
}

// ExecuteAll runs every agent in parallel.
func (c *AgentController) ExecuteAll(input map[string]any, onProgress ProgressFunc) (*domain.ExecutionResult, error) {
	return c.executeParallel(domain.ExecutionModeAll, domain.AgentTypes, input, onProgress)
}

// ExecuteCustom runs a chosen agent set in parallel.
func (c *AgentController) ExecuteCustom(agents []domain.AgentType, input map[string]any, onProgress ProgressFunc) (*domain.ExecutionResult, error) {
	if len(agents) == 0 {
		return nil, domain.ErrNoAgentsSelected
	}
	for _, at := range agents {
		if !c.ValidAgent(at) {
			return nil, domain.ErrAgentNotFound
		}
	}
	return c.executeParallel(domain.ExecutionModeCustom, agents, input, onProgress)
}

func (c *AgentController) executeParallel(mode domain.ExecutionMode, agents []domain.AgentType, input map[string]any, onProgress ProgressFunc) (*domain.ExecutionResult, error) {
	executionID := uuid.New().String()
	startedAt := nowMS()

	result := &domain.ExecutionResult{
		ExecutionID: executionID,
		Mode:        mode,
		Agents:      make(map[domain.AgentType]*domain.AgentProgress, len(agents)),
		StartedAt:   startedAt,
		Success:     true,
	}
	for _, at := range agents {
		started := startedAt
		result.Agents[at] = &domain.AgentProgress{
			AgentType: at,
			Status:    domain.AgentStatusRunning,
			StartedAt: &started,
		}
	}

	c.mu.Lock()
	c.executions[executionID] = result
	c.mu.Unlock()

	var wg sync.WaitGroup
	for _, at := range agents {
		wg.Add(1)
		go func(at domain.AgentType) {
			defer wg.Done()
			progress := result.Agents[at]
			agentResult := c.runAgent(executionID, at, input, progress, onProgress)
			done := nowMS()

			c.mu.Lock()
			defer c.mu.Unlock()
			if progress.Status == domain.AgentStatusCancelled {
				return
			}
			progress.Status = domain.AgentStatusCompleted
			progress.Progress = 100
			progress.Result = agentResult
			progress.CompletedAt = &done
		}(at)
	}
	wg.Wait()

	c.sealExecution(result)
	return result, nil
}

// ExecuteChain runs agents in order, merging each agent's output into the
// input of the next. A failure stops the chain.
func (c *AgentController) ExecuteChain(chain []domain.AgentType, input map[string]any, onProgress ProgressFunc) (*domain.ExecutionResult, error) {
	if len(chain) == 0 {
		return nil, domain.ErrNoAgentsSelected
	}
	for _, at := range chain {
		if !c.ValidAgent(at) {
			return nil, domain.ErrAgentNotFound
		}
	}

	executionID := uuid.New().String()
	startedAt := nowMS()

	result := &domain.ExecutionResult{
		ExecutionID: executionID,
		Mode:        domain.ExecutionModeChain,
		Agents:      make(map[domain.AgentType]*domain.AgentProgress, len(chain)),
		StartedAt:   startedAt,
		Success:     true,
	}
	for _, at := range chain {
		result.Agents[at] = &domain.AgentProgress{
			AgentType: at,
			Status:    domain.AgentStatusReady,
		}
	}

	c.mu.Lock()
	c.executions[executionID] = result
	c.mu.Unlock()

	current := make(map[string]any, len(input))
	for k, v := range input {
		current[k] = v
	}

	for _, at := range chain {
		progress := result.Agents[at]
		started := nowMS()

		c.mu.Lock()
		progress.Status = domain.AgentStatusRunning
		progress.StartedAt = &started
		c.mu.Unlock()

		agentResult := c.runAgent(executionID, at, current, progress, onProgress)
		done := nowMS()

		c.mu.Lock()
		if progress.Status == domain.AgentStatusCancelled {
			result.Success = false
			c.mu.Unlock()
			break
		}
		for k, v := range agentResult {
			current[k] = v
		}
		progress.Status = domain.AgentStatusCompleted
		progress.Progress = 100
		progress.Result = agentResult
		progress.CompletedAt = &done
		c.mu.Unlock()
	}

	c.sealExecution(result)
	return result, nil
}

func (c *AgentController) sealExecution(result *domain.ExecutionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	done := nowMS()
	total := done - result.StartedAt
	result.CompletedAt = &done
	result.TotalTimeMS = &total
	log.WithFields(log.Fields{
		"execution_id": result.ExecutionID,
		"mode":         result.Mode,
		"agents":       len(result.Agents),
		"total_ms":     total,
	}).Info("agent execution finished")
}

// Cancel marks running agents in an execution as cancelled.
func (c *AgentController) Cancel(executionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.executions[executionID]
	if !ok {
		return domain.ErrExecutionNotFound
	}
	c.cancelled[executionID] = true
	for _, progress := range result.Agents {
		if progress.Status == domain.AgentStatusRunning {
			progress.Status = domain.AgentStatusCancelled
		}
	}
	return nil
}

func (c *AgentController) GetExecution(executionID string) (*domain.ExecutionResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result, ok := c.executions[executionID]
	if !ok {
		return nil, domain.ErrExecutionNotFound
	}
	return result, nil
}

// Presets

func (c *AgentController) SavePreset(preset *domain.AgentPreset) string {
	if preset.ID == "" {
		preset.ID = uuid.New().String()
	}
	if preset.CreatedAt == 0 {
		preset.CreatedAt = time.Now().Unix()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.presets[preset.ID] = preset
	return preset.ID
}

func (c *AgentController) GetPreset(id string) (*domain.AgentPreset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	preset, ok := c.presets[id]
	if !ok {
		return nil, domain.ErrPresetNotFound
	}
	return preset, nil
}

func (c *AgentController) ListPresets() []*domain.AgentPreset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	presets := make([]*domain.AgentPreset, 0, len(c.presets))
	for _, p := range c.presets {
		presets = append(presets, p)
	}
	return presets
}

func (c *AgentController) DeletePreset(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.presets[id]; !ok {
		return domain.ErrPresetNotFound
	}
	delete(c.presets, id)
	return nil
}
