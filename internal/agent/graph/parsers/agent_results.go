package parsers

import (
	"fmt"
	"strings"

	"github.com/malcolmcuady/portfolio-server/internal/agent/model"
	errx "github.com/malcolmcuady/portfolio-server/internal/core/error"
	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

// ParseIntentResult validates the classifier output. The sentiment and
// workflow enums are normalized to lowercase before checking; anything else
// about the result is rejected outright.
func ParseIntentResult(content string) (out *model.IntentResult, err error) {
	defer recoverParse("intent_result", &out, &err)

	var raw struct {
		Intent       string  `json:"intent"`
		Sentiment    string  `json:"sentiment"`
		Confidence   float64 `json:"confidence"`
		WorkflowType string  `json:"workflowType"`
	}
	if err := decodeObject(content, &raw); err != nil {
		return nil, err
	}

	res := &model.IntentResult{
		Intent:       strings.TrimSpace(raw.Intent),
		Sentiment:    model.Sentiment(strings.ToLower(strings.TrimSpace(raw.Sentiment))),
		Confidence:   raw.Confidence,
		WorkflowType: model.WorkflowType(strings.ToLower(strings.TrimSpace(raw.WorkflowType))),
	}

	if res.Intent == "" {
		return nil, errx.WrapSchema(fmt.Errorf("intent is empty"))
	}
	if !res.Sentiment.Valid() {
		return nil, errx.WrapSchema(fmt.Errorf("unknown sentiment %q", raw.Sentiment))
	}
	if !res.WorkflowType.Valid() {
		return nil, errx.WrapSchema(fmt.Errorf("unknown workflow type %q", raw.WorkflowType))
	}
	if err := checkConfidence(res.Confidence, "intent.confidence"); err != nil {
		return nil, err
	}
	return res, nil
}

// ParseRetrievedInfo validates the retriever output.
func ParseRetrievedInfo(content string) (out *model.RetrievedInfo, err error) {
	defer recoverParse("retrieved_info", &out, &err)

	var raw model.RetrievedInfo
	if err := decodeObject(content, &raw); err != nil {
		return nil, err
	}

	raw.RelevantData = strings.TrimSpace(raw.RelevantData)
	if raw.RelevantData == "" {
		return nil, errx.WrapSchema(fmt.Errorf("relevantData is empty"))
	}
	if err := checkConfidence(raw.Confidence, "retrieved.confidence"); err != nil {
		return nil, err
	}
	raw.Sources = normalizeSources(raw.Sources)
	return &raw, nil
}

// ParseDraftedAnswer validates the drafter output. usedSources must be a
// subset of the sources the retriever provided; citations outside that set
// are dropped with a warning rather than trusted.
func ParseDraftedAnswer(content string, allowedSources []string) (out *model.DraftedAnswer, err error) {
	defer recoverParse("drafted_answer", &out, &err)

	var raw model.DraftedAnswer
	if err := decodeObject(content, &raw); err != nil {
		return nil, err
	}

	raw.Answer = strings.TrimSpace(raw.Answer)
	if raw.Answer == "" {
		return nil, errx.WrapSchema(fmt.Errorf("answer is empty"))
	}

	allowed := make(map[string]bool, len(allowedSources))
	for _, s := range normalizeSources(allowedSources) {
		allowed[s] = true
	}

	kept := make([]string, 0, len(raw.UsedSources))
	for _, s := range normalizeSources(raw.UsedSources) {
		if !allowed[s] {
			logx.Warn().Str("source", s).Msg("draft cited a source outside the retrieved set; dropping")
			continue
		}
		kept = append(kept, s)
	}
	raw.UsedSources = kept
	return &raw, nil
}

// ParseValidatedAnswer validates the validator output.
func ParseValidatedAnswer(content string) (out *model.ValidatedAnswer, err error) {
	defer recoverParse("validated_answer", &out, &err)

	var raw model.ValidatedAnswer
	if err := decodeObject(content, &raw); err != nil {
		return nil, err
	}

	raw.FinalAnswer = strings.TrimSpace(raw.FinalAnswer)
	if raw.FinalAnswer == "" {
		return nil, errx.WrapSchema(fmt.Errorf("finalAnswer is empty"))
	}
	if err := checkConfidence(raw.Confidence, "validated.confidence"); err != nil {
		return nil, err
	}
	return &raw, nil
}

// ParseRewrittenQuery validates the query-rewriter output.
func ParseRewrittenQuery(content string) (out *model.RewrittenQuery, err error) {
	defer recoverParse("rewritten_query", &out, &err)

	var raw model.RewrittenQuery
	if err := decodeObject(content, &raw); err != nil {
		return nil, err
	}

	raw.RewrittenQuery = strings.TrimSpace(raw.RewrittenQuery)
	if raw.RewrittenQuery == "" {
		return nil, errx.WrapSchema(fmt.Errorf("rewrittenQuery is empty"))
	}
	return &raw, nil
}

// ParseGeneralReply validates the general-conversation responder output.
func ParseGeneralReply(content string) (out *model.GeneralReply, err error) {
	defer recoverParse("general_reply", &out, &err)

	var raw model.GeneralReply
	if err := decodeObject(content, &raw); err != nil {
		return nil, err
	}

	raw.Answer = strings.TrimSpace(raw.Answer)
	if raw.Answer == "" {
		return nil, errx.WrapSchema(fmt.Errorf("answer is empty"))
	}
	return &raw, nil
}

// recoverParse converts a parser panic into a schema error so a malformed
// model payload can never take down the turn with an unhandled panic.
func recoverParse[T any](component string, out **T, err *error) {
	if r := recover(); r != nil {
		logx.Error().Str("component", component).Msgf("panic recovered: %v", r)
		*out = nil
		*err = errx.WrapSchema(fmt.Errorf("%s parser panic", component))
	}
}
