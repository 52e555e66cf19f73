package scoring

import (
	"github.com/dcoelho/company-match/config"
	"github.com/dcoelho/company-match/model"
)

// reviewStringSimilarityFloor guards the REVIEW band: a candidate whose
// phonetic and dominance signals are decent but whose lexical overlap with
// the query is near zero must not reach a human reviewer.
const reviewStringSimilarityFloor = 0.5

// Decide maps a composite confidence score and its signal set onto a terminal
// decision. Rules are evaluated in precedence order; the first match wins:
//
//  1. no candidates          -> REJECT, "no_candidates"
//  2. confidence >= accept   -> ACCEPT, "high_confidence"
//  3. confidence >= review
//     and lexical floor met  -> REVIEW, "moderate_confidence"
//  4. otherwise              -> REJECT, "low_confidence"
func Decide(confidence float64, signals model.SignalSet, hasCandidates bool, cfg config.Config) (model.Status, string) {
	if !hasCandidates {
		return model.StatusReject, model.ReasonNoCandidates
	}
	if confidence >= cfg.AcceptThreshold {
		return model.StatusAccept, model.ReasonHighConfidence
	}
	if confidence >= cfg.ReviewThreshold && signals.StringSimilarity >= reviewStringSimilarityFloor {
		return model.StatusReview, model.ReasonModerateConfidence
	}
	return model.StatusReject, model.ReasonLowConfidence
}
