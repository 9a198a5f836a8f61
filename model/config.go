package model

import "time"

// RetrievalConfig holds every tunable of the retrieval pipeline. It is
// constructed once at startup and passed by injection; components never
// mutate it.
type RetrievalConfig struct {
	// Query bounds
	MaxQueryChars int `json:"max_query_chars"`
	MaxExpansions int `json:"max_expansions"`

	// Intent classification
	MinIntentConfidence float64 `json:"min_intent_confidence"`

	// Vector search parameters
	TopK                int     `json:"top_k"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
	SemanticWeight      float64 `json:"semantic_weight"`
	KeywordWeight       float64 `json:"keyword_weight"`

	// Reranking parameters
	SectionBoosts    map[Intent]map[SectionType]float64 `json:"section_boosts"`
	EntityMatchBoost float64                            `json:"entity_match_boost"`
	RecencyMaxBoost  float64                            `json:"recency_max_boost"`
	RecencyWindow    time.Duration                      `json:"recency_window"`

	// Graph expansion parameters
	MaxSeedNodes     int                        `json:"max_seed_nodes"`
	GraphWeight      float64                    `json:"graph_weight"`
	TraversalConfigs map[Intent]TraversalConfig `json:"traversal_configs"`

	// Context assembly parameters
	MaxContextTokens int `json:"max_context_tokens"`
	FullTextCount    int `json:"full_text_count"`
	SummaryMaxTokens int `json:"summary_max_tokens"`

	// Generation parameters
	Temperatures map[Intent]float64 `json:"temperatures"`

	// Store call handling
	StoreTimeout time.Duration `json:"store_timeout"`

	// Response cache, keyed by (query text, workflow scope)
	EnableCache bool          `json:"enable_cache"`
	CacheTTL    time.Duration `json:"cache_ttl"`
}

// DefaultRetrievalConfig returns the default pipeline configuration.
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		MaxQueryChars:       2000,
		MaxExpansions:       5,
		MinIntentConfidence: 0.3,
		TopK:                10,
		SimilarityThreshold: 0.5,
		SemanticWeight:      0.7,
		KeywordWeight:       0.3,
		SectionBoosts:       DefaultSectionBoosts(),
		EntityMatchBoost:    0.1,
		RecencyMaxBoost:     0.1,
		RecencyWindow:       365 * 24 * time.Hour,
		MaxSeedNodes:        5,
		GraphWeight:         0.5,
		TraversalConfigs:    DefaultTraversalConfigs(),
		MaxContextTokens:    4000,
		FullTextCount:       3,
		SummaryMaxTokens:    120,
		Temperatures: map[Intent]float64{
			IntentQA:       0.0,
			IntentAnalysis: 0.2,
			IntentAudit:    0.0,
		},
		StoreTimeout: 10 * time.Second,
		EnableCache:  false,
		CacheTTL:     5 * time.Minute,
	}
}

// DefaultSectionBoosts returns the per-intent section boost tables.
// QA favors declarations and coverages, ANALYSIS the comparative sections,
// AUDIT the provenance-bearing sections.
func DefaultSectionBoosts() map[Intent]map[SectionType]float64 {
	return map[Intent]map[SectionType]float64{
		IntentQA: {
			SectionDeclarations: 0.15,
			SectionCoverages:    0.15,
			SectionDefinitions:  0.05,
		},
		IntentAnalysis: {
			SectionCoverages:  0.15,
			SectionExclusions: 0.1,
			SectionConditions: 0.1,
			SectionSchedule:   0.05,
		},
		IntentAudit: {
			SectionEndorsements: 0.15,
			SectionLossRun:      0.15,
			SectionEvidence:     0.15,
		},
	}
}

// DefaultTraversalConfigs returns the per-intent traversal policies.
// AUDIT traverses unrestricted; the other intents follow an allowlist.
func DefaultTraversalConfigs() map[Intent]TraversalConfig {
	return map[Intent]TraversalConfig{
		IntentQA: {
			MaxDepth: 1,
			EdgeTypes: []EdgeType{
				EdgeTypeCovers, EdgeTypeExcludes, EdgeTypeInsures,
			},
			MaxNodes: 10,
		},
		IntentAnalysis: {
			MaxDepth: 2,
			EdgeTypes: []EdgeType{
				EdgeTypeCovers, EdgeTypeExcludes, EdgeTypeAmends,
				EdgeTypeReferences, EdgeTypeInsures,
			},
			MaxNodes: 20,
		},
		IntentAudit: {
			MaxDepth:  3,
			EdgeTypes: nil, // unrestricted
			MaxNodes:  30,
		},
	}
}

// TraversalConfigFor returns the traversal policy for an intent, falling
// back to the QA policy for unknown intents.
func (c RetrievalConfig) TraversalConfigFor(intent Intent) TraversalConfig {
	if tc, ok := c.TraversalConfigs[intent]; ok {
		return tc
	}
	return c.TraversalConfigs[IntentQA]
}

// TemperatureFor returns the generation temperature for an intent.
func (c RetrievalConfig) TemperatureFor(intent Intent) float64 {
	if t, ok := c.Temperatures[intent]; ok {
		return t
	}
	return 0.0
}
