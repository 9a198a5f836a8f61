package understanding

import (
	"regexp"

	"github.com/Shreekar11/insura-ai-sub005/model"
)

// Classifier assigns a query to one of the retrieval intents using
// keyword pattern tables. Classification is deterministic and never fails;
// unrecognized queries fall back to question answering.
type Classifier struct {
	patterns      map[model.Intent][]*regexp.Regexp
	minConfidence float64
}

// intentPrecedence is the tie-break order. When two intents score equally
// the deeper-retrieval intent wins, so a borderline query errs towards
// gathering more context rather than less.
var intentPrecedence = []model.Intent{
	model.IntentAudit,
	model.IntentAnalysis,
	model.IntentQA,
}

// NewClassifier returns a classifier with the built-in pattern tables.
// Results whose confidence falls below minConfidence degrade to question
// answering at exactly that confidence.
func NewClassifier(minConfidence float64) *Classifier {
	return &Classifier{
		minConfidence: minConfidence,
		patterns: map[model.Intent][]*regexp.Regexp{
			model.IntentQA: compileAll(
				`what is|what are|what's`,
				`who is|who are`,
				`when (does|is|was|did)`,
				`where (is|are|was)`,
				`how (much|many)`,
				`is there|are there`,
				`does (the|this|it)`,
				`define|definition of|meaning of`,
				`policy number`,
			),
			model.IntentAnalysis: compileAll(
				`compare|comparison`,
				`difference|differ(s|ence)?`,
				`versus|vs\.?`,
				`analy(z|s)e|analysis`,
				`evaluate|assess(ment)?`,
				`impact|effect of`,
				`trend(s)?`,
				`summar(y|ize|ise)`,
				`between`,
				`across`,
				`breakdown`,
				`coverage gap|gap(s)? in`,
			),
			model.IntentAudit: compileAll(
				`trace`,
				`provenance`,
				`audit`,
				`verif(y|ication)`,
				`supporting evidence|evidence (of|for)`,
				`history of`,
				`chain of`,
				`lineage`,
				`origin of`,
				`who (changed|modified|approved|issued|signed)`,
				`endorsement(s)?`,
				`complian(t|ce)`,
			),
		},
	}
}

// Classify determines the intent of the query. A query matching no pattern
// is question answering with confidence 0.5. Matching three or more
// patterns overall boosts the winning confidence by 0.2, capped at 1.0.
func (c *Classifier) Classify(query string) model.Classification {
	counts := make(map[model.Intent]int, len(c.patterns))
	total := 0
	for intent, patterns := range c.patterns {
		for _, p := range patterns {
			if p.MatchString(query) {
				counts[intent]++
				total++
			}
		}
	}

	if total == 0 {
		return model.Classification{
			Intent:     model.IntentQA,
			Confidence: 0.5,
			Depth:      model.IntentQA.Depth(),
		}
	}

	winner := model.IntentQA
	best := -1
	for _, intent := range intentPrecedence {
		if counts[intent] > best {
			winner = intent
			best = counts[intent]
		}
	}

	confidence := float64(best) / float64(total)
	if total >= 3 {
		confidence += 0.2
		if confidence > 1.0 {
			confidence = 1.0
		}
	}

	if confidence < c.minConfidence {
		return model.Classification{
			Intent:     model.IntentQA,
			Confidence: c.minConfidence,
			Depth:      model.IntentQA.Depth(),
		}
	}

	return model.Classification{
		Intent:     winner,
		Confidence: confidence,
		Depth:      winner.Depth(),
	}
}

func compileAll(expressions ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(expressions))
	for _, expr := range expressions {
		compiled = append(compiled, regexp.MustCompile(`(?i)\b(`+expr+`)\b`))
	}
	return compiled
}
