// Package parsers turns raw model text into the pipeline's typed artifacts.
// Every parse is strict: the JSON must decode and every field must pass its
// schema checks before the result is trusted downstream.
package parsers

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	errx "github.com/malcolmcuady/portfolio-server/internal/core/error"
	logx "github.com/malcolmcuady/portfolio-server/pkg/logger"
)

// basic safety limits to avoid pathological inputs
const (
	maxContentLen = 128 * 1024 // 128KB
	maxSources    = 32         // maximum cited sources per record
	maxErrSnippet = 200        // limit error snippet size
)

// decodeObject extracts the outermost JSON object from model output and
// unmarshals it into v. Models occasionally wrap JSON in markdown fences or
// prose; everything outside the outermost braces is discarded.
func decodeObject(content string, v any) error {
	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "parsers").
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("content truncated due to size limit")
		content = content[:maxContentLen]
	}
	if !utf8.ValidString(content) {
		return errx.WrapSchema(fmt.Errorf("content is not valid utf8"))
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return errx.WrapSchema(fmt.Errorf("no JSON object in output: %s", safeSnippet(content)))
	}

	if err := json.Unmarshal([]byte(content[start:end+1]), v); err != nil {
		return errx.WrapSchema(fmt.Errorf("decode output: %w", err))
	}
	return nil
}

func safeSnippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxErrSnippet {
		return s
	}
	return s[:maxErrSnippet]
}

func checkConfidence(v float64, name string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
		return errx.WrapSchema(fmt.Errorf("%s out of range", name))
	}
	return nil
}

// normalizeSources trims, lowercases and dedups a source list, dropping
// empties. Order is preserved for logging but carries no meaning.
func normalizeSources(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if len(out) >= maxSources {
			break
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
