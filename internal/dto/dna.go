package dto

import "github.com/morningstarxcdcode/dgc-platform/internal/domain"

type DNAGenerateRequest struct {
	Prompt string             `json:"prompt" binding:"required"`
	Style  map[string]float64 `json:"style"`
}

type DNABreedRequest struct {
	Parent1Hash   string  `json:"parent1_hash" binding:"required"`
	Parent2Hash   string  `json:"parent2_hash" binding:"required"`
	MutationBoost float64 `json:"mutation_boost"`
}

type DNAEvolveRequest struct {
	DNAHash              string             `json:"dna_hash" binding:"required"`
	EnvironmentalFactors map[string]float64 `json:"environmental_factors"`
}

type GeneDTO struct {
	Value        float64 `json:"value"`
	Dominant     bool    `json:"dominant"`
	MutationRate float64 `json:"mutation_rate"`
}

// DNAResponse is the envelope every DNA endpoint returns. ParentHashes and
// Mutations stay nil for freshly generated DNA.
type DNAResponse struct {
	DNAHash      string             `json:"dna_hash"`
	Genes        map[string]GeneDTO `json:"genes"`
	Generation   int                `json:"generation"`
	ParentHashes []string           `json:"parent_hashes,omitempty"`
	Mutations    []domain.Mutation  `json:"mutations,omitempty"`
	Traits       string             `json:"traits"`
	RarityScore  float64            `json:"rarity_score"`
}

type CompatibilityResponse struct {
	Parent1Hash        string  `json:"parent1_hash"`
	Parent2Hash        string  `json:"parent2_hash"`
	CompatibilityScore float64 `json:"compatibility_score"`
	Recommendation     string  `json:"recommendation"`
}
