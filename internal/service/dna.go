package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

// promptKeywords maps prompt words to per-gene value adjustments.
var promptKeywords = map[domain.GeneType]map[string]float64{
	domain.GeneColor: {
		"bright": 0.2, "dark": -0.2, "colorful": 0.3,
		"monochrome": -0.3, "vibrant": 0.25, "muted": -0.15,
	},
	domain.GeneStyle: {
		"abstract": 0.3, "realistic": -0.2, "cartoon": 0.2,
		"photorealistic": -0.3, "artistic": 0.15,
	},
	domain.GeneMood: {
		"happy": 0.3, "sad": -0.2, "peaceful": 0.1,
		"energetic": 0.2, "calm": -0.1, "dramatic": 0.15,
	},
	domain.GeneComplexity: {
		"simple": -0.3, "complex": 0.3, "minimal": -0.25,
		"detailed": 0.25, "intricate": 0.35,
	},
	domain.GeneEnergy: {
		"dynamic": 0.3, "static": -0.2, "moving": 0.2,
		"still": -0.15, "action": 0.25,
	},
	domain.GeneHarmony: {
		"balanced": 0.2, "chaotic": -0.2, "symmetric": 0.15,
		"asymmetric": -0.1, "unified": 0.2,
	},
	domain.GeneContrast: {
		"high contrast": 0.3, "low contrast": -0.2,
		"bold": 0.2, "subtle": -0.15,
	},
	domain.GeneTexture: {
		"smooth": -0.2, "rough": 0.2, "textured": 0.25,
		"glossy": -0.1, "matte": 0.1,
	},
}

// DNAEngine generates, breeds and evolves genetic records for content.
// Generation from a prompt is deterministic; breeding and evolution draw
// from the engine's own random stream.
type DNAEngine struct {
	mu       sync.RWMutex
	registry map[string]*domain.ContentDNA
	rng      *rand.Rand
	rngMu    sync.Mutex
}

func NewDNAEngine() *DNAEngine {
	return &DNAEngine{
		registry: make(map[string]*domain.ContentDNA),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededDNAEngine fixes the breeding/evolution stream for tests.
func NewSeededDNAEngine(seed int64) *DNAEngine {
	e := NewDNAEngine()
	e.rng = rand.New(rand.NewSource(seed))
	return e
}

func (e *DNAEngine) random() float64 {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Float64()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// dnaHash derives the identifier from gene values alone, so identical
// genomes always collapse to one hash. json.Marshal sorts map keys, which
// keeps the payload canonical.
func dnaHash(genes map[domain.GeneType]domain.Gene) string {
	values := make(map[string]float64, len(genes))
	for gt, g := range genes {
		values[string(gt)] = g.Value
	}
	payload, _ := json.Marshal(values)
	sum := sha256.Sum256(payload)
	return "DNA_" + hex.EncodeToString(sum[:])[:32]
}

// GenerateFromPrompt derives a genome from the prompt text. The prompt hash
// seeds the per-gene randomness, so a prompt always yields the same DNA.
// Style overrides pin individual genes by their lowercase name.
func (e *DNAEngine) GenerateFromPrompt(prompt string, style map[string]float64) *domain.ContentDNA {
	promptSum := sha256.Sum256([]byte(prompt))
	seed, _ := strconv.ParseInt(hex.EncodeToString(promptSum[:])[:8], 16, 64)
	r := rand.New(rand.NewSource(seed))
	promptLower := strings.ToLower(prompt)

	genes := make(map[domain.GeneType]domain.Gene, len(domain.GeneTypes))
	for _, gt := range domain.GeneTypes {
		base := r.Float64()
		adjustment := 0.0
		for keyword, delta := range promptKeywords[gt] {
			if strings.Contains(promptLower, keyword) {
				adjustment += delta
			}
		}
		genes[gt] = domain.Gene{
			Type:         gt,
			Value:        clamp01(base + adjustment),
			Dominant:     r.Float64() > 0.3,
			MutationRate: 0.03 + r.Float64()*0.04,
		}
	}

	for _, gt := range domain.GeneTypes {
		if override, ok := style[strings.ToLower(string(gt))]; ok {
			g := genes[gt]
			g.Value = clamp01(override)
			genes[gt] = g
		}
	}

	dna := &domain.ContentDNA{
		Hash:            dnaHash(genes),
		Genes:           genes,
		Generation:      0,
		ParentHashes:    []string{},
		MutationHistory: []domain.Mutation{},
		CreatedAt:       time.Now().UTC(),
	}
	e.register(dna)
	return dna
}

// Breed combines two genomes. Dominant genes win over recessive ones,
// matched dominance blends, and each gene can mutate with probability
// max(parent rates) + boost.
func (e *DNAEngine) Breed(parent1Hash, parent2Hash string, mutationBoost float64) (*domain.ContentDNA, error) {
	if mutationBoost < 0 || mutationBoost > 1 {
		return nil, domain.ErrInvalidMutationBoost
	}
	parent1, err := e.Get(parent1Hash)
	if err != nil {
		return nil, fmt.Errorf("parent %s: %w", parent1Hash, err)
	}
	parent2, err := e.Get(parent2Hash)
	if err != nil {
		return nil, fmt.Errorf("parent %s: %w", parent2Hash, err)
	}

	childGenes := make(map[domain.GeneType]domain.Gene, len(domain.GeneTypes))
	mutations := []domain.Mutation{}

	for _, gt := range domain.GeneTypes {
		gene1, ok1 := parent1.Genes[gt]
		gene2, ok2 := parent2.Genes[gt]
		if !ok1 || !ok2 {
			continue
		}

		var base float64
		var source string
		switch {
		case gene1.Dominant && !gene2.Dominant:
			base, source = gene1.Value, "parent1"
		case gene2.Dominant && !gene1.Dominant:
			base, source = gene2.Value, "parent2"
		default:
			base, source = (gene1.Value+gene2.Value)/2, "blend"
		}

		mutationRate := math.Max(gene1.MutationRate, gene2.MutationRate) + mutationBoost
		value := base
		if e.random() < mutationRate {
			value = clamp01(base + (e.random()-0.5)*0.4)
			mutations = append(mutations, domain.Mutation{
				Gene:     gt,
				Original: base,
				Mutated:  value,
				Source:   source,
			})
		}

		childRate := (gene1.MutationRate+gene2.MutationRate)/2 + (e.random()-0.5)*0.01
		childRate = math.Max(0.01, math.Min(0.15, childRate))

		childGenes[gt] = domain.Gene{
			Type:         gt,
			Value:        value,
			Dominant:     e.random() > 0.3,
			MutationRate: childRate,
		}
	}

	generation := parent1.Generation
	if parent2.Generation > generation {
		generation = parent2.Generation
	}

	child := &domain.ContentDNA{
		Hash:            dnaHash(childGenes),
		Genes:           childGenes,
		Generation:      generation + 1,
		ParentHashes:    []string{parent1Hash, parent2Hash},
		MutationHistory: mutations,
		CreatedAt:       time.Now().UTC(),
	}
	e.register(child)
	log.WithFields(log.Fields{
		"child":      child.Hash,
		"generation": child.Generation,
		"mutations":  len(mutations),
	}).Info("DNA bred")
	return child, nil
}

// Evolve nudges each gene by drift plus environmental pressure keyed by the
// lowercase gene name. Generation does not change; lineage points at the
// original record.
func (e *DNAEngine) Evolve(hash string, factors map[string]float64) (*domain.ContentDNA, error) {
	original, err := e.Get(hash)
	if err != nil {
		return nil, err
	}

	evolvedGenes := make(map[domain.GeneType]domain.Gene, len(original.Genes))
	mutations := []domain.Mutation{}

	for _, gt := range domain.GeneTypes {
		gene, ok := original.Genes[gt]
		if !ok {
			continue
		}
		pressure := factors[strings.ToLower(string(gt))]
		value := clamp01(gene.Value + (e.random()-0.5)*0.1 + pressure*0.05)

		if math.Abs(value-gene.Value) > 0.02 {
			mutations = append(mutations, domain.Mutation{
				Gene:     gt,
				Original: gene.Value,
				Evolved:  value,
				Pressure: pressure,
			})
		}
		evolvedGenes[gt] = domain.Gene{
			Type:         gt,
			Value:        value,
			Dominant:     gene.Dominant,
			MutationRate: gene.MutationRate,
		}
	}

	history := make([]domain.Mutation, 0, len(original.MutationHistory)+len(mutations))
	history = append(history, original.MutationHistory...)
	history = append(history, mutations...)

	evolved := &domain.ContentDNA{
		Hash:            dnaHash(evolvedGenes),
		Genes:           evolvedGenes,
		Generation:      original.Generation,
		ParentHashes:    []string{hash},
		MutationHistory: history,
		CreatedAt:       time.Now().UTC(),
	}
	e.register(evolved)
	return evolved, nil
}

func (e *DNAEngine) Get(hash string) (*domain.ContentDNA, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	dna, ok := e.registry[hash]
	if !ok {
		return nil, domain.ErrDNANotFound
	}
	return dna, nil
}

func (e *DNAEngine) register(dna *domain.ContentDNA) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registry[dna.Hash] = dna
}

// Compatibility scores two genomes for breeding, 0 to 100. Moderate genetic
// diversity scores highest; complementary dominance adds up to 20.
func (e *DNAEngine) Compatibility(hash1, hash2 string) float64 {
	dna1, err1 := e.Get(hash1)
	dna2, err2 := e.Get(hash2)
	if err1 != nil || err2 != nil {
		return 0
	}

	diversitySum := 0.0
	geneCount := 0
	complementary := 0
	for _, gt := range domain.GeneTypes {
		gene1, ok1 := dna1.Genes[gt]
		gene2, ok2 := dna2.Genes[gt]
		if !ok1 || !ok2 {
			continue
		}
		diversitySum += math.Abs(gene1.Value - gene2.Value)
		geneCount++
		if gene1.Dominant != gene2.Dominant {
			complementary++
		}
	}
	if geneCount == 0 {
		return 0
	}

	avg := diversitySum / float64(geneCount)
	var compatibility float64
	switch {
	case avg < 0.2:
		compatibility = avg * 250
	case avg > 0.8:
		compatibility = (1 - avg) * 250
	default:
		compatibility = 50 + (0.5-math.Abs(0.5-avg))*100
	}

	bonus := float64(complementary) / float64(len(domain.GeneTypes)) * 20
	return math.Min(compatibility+bonus, 100)
}

// RarityScore rates how unusual a genome is, 0 to 100. Extreme gene values,
// later generations and accumulated mutations all raise it.
func RarityScore(dna *domain.ContentDNA) float64 {
	if len(dna.Genes) == 0 {
		return 0
	}
	extremes := 0
	for _, gene := range dna.Genes {
		switch {
		case gene.Value > 0.9 || gene.Value < 0.1:
			extremes += 2
		case gene.Value > 0.8 || gene.Value < 0.2:
			extremes++
		}
	}
	base := float64(extremes) / float64(len(dna.Genes)) * 50
	generationBonus := math.Min(float64(dna.Generation)*5, 30)
	mutationBonus := math.Min(float64(len(dna.MutationHistory))*2, 20)
	return math.Min(base+generationBonus+mutationBonus, 100)
}

// TraitString renders the genome as a short human-readable summary.
func TraitString(dna *domain.ContentDNA) string {
	traits := []string{}
	for _, gt := range domain.GeneTypes {
		gene, ok := dna.Genes[gt]
		if !ok {
			continue
		}
		name := strings.ToLower(string(gt))
		if gene.Value > 0.7 {
			traits = append(traits, "High "+name)
		} else if gene.Value < 0.3 {
			traits = append(traits, "Low "+name)
		}
	}
	if len(traits) == 0 {
		return "Balanced traits"
	}
	return strings.Join(traits, ", ")
}

// BreedingRecommendation phrases a compatibility score for the UI.
func BreedingRecommendation(score float64) string {
	switch {
	case score > 70:
		return "Excellent match!"
	case score > 50:
		return "Good match"
	}
	return "Low compatibility"
}
