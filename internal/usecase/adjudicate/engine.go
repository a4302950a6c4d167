// Package adjudicate reconciles the statistical classifier's verdict with the
// online corroboration signal into one final decision. The policy is a
// deterministic rule table rather than a learned meta-model: both inputs are
// uncalibrated, so transparent, reproducible behavior wins over statistical
// optimality.
package adjudicate

import (
	"fmt"

	"newstrust/internal/domain/entity"
)

// Reasons prepended to the explanation when a rule fires.
const (
	ReasonVerifiedByOutlets = "Verified by major news outlets"
	ReasonSearchFailed      = "Live verification failed (Connection/Limit)"
	ReasonRealInconclusive  = "Predicted Real by AI (Online verification inconclusive)"
	ReasonNoSources         = "No online sources found to verify"
	ReasonDisjointSources   = "Found online sources but disjoint from verified list"
)

const (
	// verifiedConfidence is assigned when a registry-listed outlet confirms
	// the story.
	verifiedConfidence = 99.9

	// wideCoverageConfidence is the moderate confidence assigned when many
	// unrecognized sources report the story.
	wideCoverageConfidence = 75.0

	// wideCoverageMin is the source count at which coverage alone is taken
	// as evidence of a real event.
	wideCoverageMin = 3

	// highConfidenceFloor is the classifier confidence above which a REAL
	// prediction survives an inconclusive online check.
	highConfidenceFloor = 70.0
)

// Decide merges a classification and a corroboration signal into the final
// verdict. It is a pure function: no I/O, deterministic, total over all input
// combinations, and it never mutates its arguments.
//
// Rule precedence: a VERIFIED_REAL corroboration wins unconditionally over the
// classifier, because the classifier is trained on stale data and is known to
// mislabel legitimate but keyword-charged topics. The remaining rules apply
// only when the classifier said FAKE; a REAL or UNKNOWN classification is
// never downgraded by corroboration alone, since the corroboration mechanism
// undercovers older and very recent events.
func Decide(cls entity.ClassificationResult, cor entity.CorroborationResult) entity.AdjudicationDecision {
	b := NewExplanationBuilder(cls.Explanation)

	if cor.Status == entity.StatusVerifiedReal {
		b.Prepend(ReasonVerifiedByOutlets)
		return finish(entity.VerdictReal, verifiedConfidence, b)
	}

	if cls.Label != entity.VerdictFake {
		return finish(cls.Label, cls.Confidence, b)
	}

	switch {
	case cor.Status == entity.StatusError:
		b.Prepend(ReasonSearchFailed)
		return finish(entity.VerdictUnknown, 0, b)

	case len(cor.Sources) == 0:
		// Rare topic or very new story. A high-confidence REAL prediction
		// would survive here; with the classifier having said FAKE the
		// condition cannot hold, but the rule is kept as written so the
		// function stays total over every declared input combination.
		if cls.Label == entity.VerdictReal && cls.Confidence > highConfidenceFloor {
			b.Prepend(ReasonRealInconclusive)
			return finish(entity.VerdictReal, cls.Confidence, b)
		}
		b.Prepend(ReasonNoSources)
		return finish(entity.VerdictUnknown, 0, b)

	case len(cor.Sources) >= wideCoverageMin:
		// Big real news gets covered by everyone, not just the curated list.
		b.Prepend(fmt.Sprintf("Widely reported online (%d+ sources)", len(cor.Sources)))
		return finish(entity.VerdictReal, wideCoverageConfidence, b)

	default:
		// Only one or two obscure sources.
		b.Prepend(ReasonDisjointSources)
		return finish(entity.VerdictUnknown, 0, b)
	}
}

// finish assembles the decision and enforces the UNKNOWN => 0.0 invariant.
func finish(label entity.Verdict, confidence float64, b *ExplanationBuilder) entity.AdjudicationDecision {
	if label == entity.VerdictUnknown {
		confidence = 0.0
	}
	return entity.AdjudicationDecision{
		Label:       label,
		Confidence:  confidence,
		Explanation: b.Build(),
	}
}
