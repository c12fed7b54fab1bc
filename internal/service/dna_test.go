package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

func TestGenerateFromPrompt_Deterministic(t *testing.T) {
	e := NewDNAEngine()

	first := e.GenerateFromPrompt("a vibrant dream", nil)
	second := e.GenerateFromPrompt("a vibrant dream", nil)

	assert.Equal(t, first.Hash, second.Hash)
	assert.True(t, strings.HasPrefix(first.Hash, "DNA_"))
	assert.Len(t, first.Genes, len(domain.GeneTypes))
	assert.Equal(t, 0, first.Generation)
	assert.Empty(t, first.ParentHashes)

	different := e.GenerateFromPrompt("a muted nightmare", nil)
	assert.NotEqual(t, first.Hash, different.Hash)
}

func TestDNAHash_CanonicalJSON(t *testing.T) {
	genes := map[domain.GeneType]domain.Gene{
		domain.GeneStyle: {Type: domain.GeneStyle, Value: 0.25},
		domain.GeneColor: {Type: domain.GeneColor, Value: 0.5},
	}

	// Keys sorted, values only.
	sum := sha256.Sum256([]byte(`{"color":0.5,"style":0.25}`))
	assert.Equal(t, "DNA_"+hex.EncodeToString(sum[:])[:32], dnaHash(genes))
}

func TestGenerateFromPrompt_GeneBounds(t *testing.T) {
	e := NewDNAEngine()

	dna := e.GenerateFromPrompt("colorful vibrant intricate explosion", nil)
	for _, gene := range dna.Genes {
		assert.GreaterOrEqual(t, gene.Value, 0.0)
		assert.LessOrEqual(t, gene.Value, 1.0)
		assert.GreaterOrEqual(t, gene.MutationRate, 0.03)
		assert.LessOrEqual(t, gene.MutationRate, 0.07)
	}
}

func TestGenerateFromPrompt_StyleOverride(t *testing.T) {
	e := NewDNAEngine()

	dna := e.GenerateFromPrompt("anything", map[string]float64{"color": 0.95, "energy": 2.0})
	assert.InDelta(t, 0.95, dna.Genes[domain.GeneColor].Value, 0.0001)
	// Overrides clamp into [0, 1].
	assert.InDelta(t, 1.0, dna.Genes[domain.GeneEnergy].Value, 0.0001)
}

func TestBreed(t *testing.T) {
	e := NewSeededDNAEngine(1)

	p1 := e.GenerateFromPrompt("bright energetic spark", nil)
	p2 := e.GenerateFromPrompt("dark still void", nil)

	child, err := e.Breed(p1.Hash, p2.Hash, 0.1)
	require.NoError(t, err)

	assert.Equal(t, 1, child.Generation)
	assert.Equal(t, []string{p1.Hash, p2.Hash}, child.ParentHashes)
	assert.Len(t, child.Genes, len(domain.GeneTypes))
	for _, gene := range child.Genes {
		assert.GreaterOrEqual(t, gene.MutationRate, 0.01)
		assert.LessOrEqual(t, gene.MutationRate, 0.15)
	}

	// Child is registered and breedable in turn.
	grandchild, err := e.Breed(child.Hash, p1.Hash, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, grandchild.Generation)
}

func TestBreed_Validation(t *testing.T) {
	e := NewSeededDNAEngine(1)
	p1 := e.GenerateFromPrompt("one", nil)

	_, err := e.Breed(p1.Hash, "DNA_missing", 0)
	assert.ErrorIs(t, err, domain.ErrDNANotFound)

	_, err = e.Breed(p1.Hash, p1.Hash, 1.5)
	assert.ErrorIs(t, err, domain.ErrInvalidMutationBoost)

	_, err = e.Breed(p1.Hash, p1.Hash, -0.1)
	assert.ErrorIs(t, err, domain.ErrInvalidMutationBoost)
}

func TestEvolve(t *testing.T) {
	e := NewSeededDNAEngine(2)
	original := e.GenerateFromPrompt("seed form", nil)

	evolved, err := e.Evolve(original.Hash, map[string]float64{"energy": 1.0})
	require.NoError(t, err)

	assert.Equal(t, original.Generation, evolved.Generation)
	assert.Equal(t, []string{original.Hash}, evolved.ParentHashes)
	for _, gene := range evolved.Genes {
		assert.GreaterOrEqual(t, gene.Value, 0.0)
		assert.LessOrEqual(t, gene.Value, 1.0)
	}

	_, err = e.Evolve("DNA_missing", nil)
	assert.ErrorIs(t, err, domain.ErrDNANotFound)
}

func TestCompatibility(t *testing.T) {
	e := NewDNAEngine()
	p1 := e.GenerateFromPrompt("bright energetic spark", nil)
	p2 := e.GenerateFromPrompt("dark still void", nil)

	score := e.Compatibility(p1.Hash, p2.Hash)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)

	// Identical genomes have zero diversity, so only the dominance bonus
	// could contribute, and identical dominance removes that too.
	self := e.Compatibility(p1.Hash, p1.Hash)
	assert.InDelta(t, 0.0, self, 0.0001)

	assert.Zero(t, e.Compatibility(p1.Hash, "DNA_missing"))
}

func TestRarityScore(t *testing.T) {
	genes := map[domain.GeneType]domain.Gene{
		domain.GeneColor: {Type: domain.GeneColor, Value: 0.95},
		domain.GeneMood:  {Type: domain.GeneMood, Value: 0.5},
	}
	dna := &domain.ContentDNA{Genes: genes, Generation: 2}

	// One extreme gene of two: 2/2*50 = 50, plus generation bonus 10.
	assert.InDelta(t, 60.0, RarityScore(dna), 0.0001)
	assert.Zero(t, RarityScore(&domain.ContentDNA{}))
}

func TestTraitStringAndRecommendation(t *testing.T) {
	genes := map[domain.GeneType]domain.Gene{
		domain.GeneColor:  {Type: domain.GeneColor, Value: 0.9},
		domain.GeneEnergy: {Type: domain.GeneEnergy, Value: 0.1},
		domain.GeneMood:   {Type: domain.GeneMood, Value: 0.5},
	}
	summary := TraitString(&domain.ContentDNA{Genes: genes})
	assert.Contains(t, summary, "High color")
	assert.Contains(t, summary, "Low energy")

	assert.Equal(t, "Balanced traits", TraitString(&domain.ContentDNA{Genes: map[domain.GeneType]domain.Gene{
		domain.GeneMood: {Type: domain.GeneMood, Value: 0.5},
	}}))

	assert.Equal(t, "Excellent match!", BreedingRecommendation(80))
	assert.Equal(t, "Good match", BreedingRecommendation(60))
	assert.Equal(t, "Low compatibility", BreedingRecommendation(30))
}
