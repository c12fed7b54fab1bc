package domain

import "time"

type GeneType string

const (
	GeneColor      GeneType = "COLOR"
	GeneStyle      GeneType = "STYLE"
	GeneMood       GeneType = "MOOD"
	GeneComplexity GeneType = "COMPLEXITY"
	GeneEnergy     GeneType = "ENERGY"
	GeneHarmony    GeneType = "HARMONY"
	GeneContrast   GeneType = "CONTRAST"
	GeneTexture    GeneType = "TEXTURE"
)

// GeneTypes lists every gene in canonical order. Hashing and breeding walk
// this slice so results stay deterministic across runs.
var GeneTypes = []GeneType{
	GeneColor, GeneStyle, GeneMood, GeneComplexity,
	GeneEnergy, GeneHarmony, GeneContrast, GeneTexture,
}

type Gene struct {
	Type         GeneType `json:"type"`
	Value        float64  `json:"value"`
	Dominant     bool     `json:"dominant"`
	MutationRate float64  `json:"mutation_rate"`
}

type Mutation struct {
	Gene     GeneType `json:"gene"`
	Original float64  `json:"original"`
	Mutated  float64  `json:"mutated,omitempty"`
	Evolved  float64  `json:"evolved,omitempty"`
	Source   string   `json:"source,omitempty"`
	Pressure float64  `json:"pressure,omitempty"`
}

// ContentDNA is the full genetic record of a piece of content.
type ContentDNA struct {
	Hash            string             `json:"dna_hash"`
	Genes           map[GeneType]Gene  `json:"genes"`
	Generation      int                `json:"generation"`
	ParentHashes    []string           `json:"parent_hashes"`
	MutationHistory []Mutation         `json:"mutation_history"`
	CreatedAt       time.Time          `json:"created_at"`
}
