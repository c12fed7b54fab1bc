package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

func newTestAgentController() *AgentController {
	c := NewAgentController()
	c.sleep = func(time.Duration) {}
	return c
}

func TestAgents_Catalog(t *testing.T) {
	c := newTestAgentController()

	agents := c.Agents()
	require.Len(t, agents, 7)
	assert.Equal(t, domain.AgentImage, agents[0].AgentType)
	assert.Equal(t, "Image Agent", agents[0].Name)
	assert.True(t, agents[0].Enabled)
}

func TestExecuteSingle(t *testing.T) {
	c := newTestAgentController()

	var mu sync.Mutex
	steps := []string{}
	result, err := c.ExecuteSingle(domain.AgentText, map[string]any{"prompt": "a story"}, func(_ domain.AgentType, _ float64, step string) {
		mu.Lock()
		steps = append(steps, step)
		mu.Unlock()
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ExecutionModeSingle, result.Mode)
	assert.True(t, result.Success)
	require.NotNil(t, result.CompletedAt)
	require.NotNil(t, result.TotalTimeMS)

	progress := result.Agents[domain.AgentText]
	require.NotNil(t, progress)
	assert.Equal(t, domain.AgentStatusCompleted, progress.Status)
	assert.InDelta(t, 100.0, progress.Progress, 0.0001)
	assert.Equal(t, "Generated description for: a story", progress.Result["text"])
	assert.Equal(t, []string{"Processing prompt...", "Generating text...", "Complete!"}, steps)

	got, err := c.GetExecution(result.ExecutionID)
	require.NoError(t, err)
	assert.Equal(t, result.ExecutionID, got.ExecutionID)
}

func TestExecuteSingle_UnknownAgent(t *testing.T) {
	c := newTestAgentController()
	_, err := c.ExecuteSingle("WEATHER", nil, nil)
	assert.ErrorIs(t, err, domain.ErrAgentNotFound)
}

func TestExecuteAll(t *testing.T) {
	c := newTestAgentController()

	result, err := c.ExecuteAll(map[string]any{"prompt": "everything"}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ExecutionModeAll, result.Mode)
	assert.Len(t, result.Agents, 7)
	for _, progress := range result.Agents {
		assert.Equal(t, domain.AgentStatusCompleted, progress.Status)
	}
}

func TestExecuteCustom(t *testing.T) {
	c := newTestAgentController()

	_, err := c.ExecuteCustom(nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrNoAgentsSelected)

	_, err = c.ExecuteCustom([]domain.AgentType{domain.AgentImage, "WEATHER"}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrAgentNotFound)

	result, err := c.ExecuteCustom([]domain.AgentType{domain.AgentImage, domain.AgentMusic}, map[string]any{"prompt": "duo"}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ExecutionModeCustom, result.Mode)
	assert.Len(t, result.Agents, 2)
}

func TestExecuteChain_MergesOutputs(t *testing.T) {
	c := newTestAgentController()

	result, err := c.ExecuteChain([]domain.AgentType{domain.AgentText, domain.AgentSearch}, map[string]any{"prompt": "chained"}, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.ExecutionModeChain, result.Mode)
	assert.True(t, result.Success)
	textProgress := result.Agents[domain.AgentText]
	searchProgress := result.Agents[domain.AgentSearch]
	assert.Equal(t, domain.AgentStatusCompleted, textProgress.Status)
	assert.Equal(t, domain.AgentStatusCompleted, searchProgress.Status)
	assert.NotNil(t, searchProgress.Result)
}

func TestCancel(t *testing.T) {
	c := NewAgentController()
	started := make(chan string, 1)
	release := make(chan struct{})
	c.sleep = func(time.Duration) { <-release }

	var result *domain.ExecutionResult
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, _ = c.ExecuteSingle(domain.AgentImage, nil, func(domain.AgentType, float64, string) {
			select {
			case started <- "running":
			default:
			}
		})
	}()

	<-started
	// The execution is registered before any agent runs, so it is visible
	// by the time the first progress callback fires.
	c.mu.RLock()
	var executionID string
	for id := range c.executions {
		executionID = id
	}
	c.mu.RUnlock()
	require.NoError(t, c.Cancel(executionID))
	close(release)
	<-done

	progress := result.Agents[domain.AgentImage]
	assert.Equal(t, domain.AgentStatusCancelled, progress.Status)

	assert.ErrorIs(t, c.Cancel("missing"), domain.ErrExecutionNotFound)
}

func TestPresets(t *testing.T) {
	c := newTestAgentController()

	id := c.SavePreset(&domain.AgentPreset{
		Name:          "Creator flow",
		EnabledAgents: []domain.AgentType{domain.AgentImage, domain.AgentDNA},
	})
	assert.NotEmpty(t, id)

	preset, err := c.GetPreset(id)
	require.NoError(t, err)
	assert.Equal(t, "Creator flow", preset.Name)
	assert.NotZero(t, preset.CreatedAt)

	assert.Len(t, c.ListPresets(), 1)

	require.NoError(t, c.DeletePreset(id))
	assert.ErrorIs(t, c.DeletePreset(id), domain.ErrPresetNotFound)
	_, err = c.GetPreset(id)
	assert.ErrorIs(t, err, domain.ErrPresetNotFound)
}
