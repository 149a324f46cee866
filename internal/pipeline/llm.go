package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadgen-cli/pkg/anthropic"
)

// complete sends one prompt and returns the raw text response. The rubric's
// product context rides in the system block so it can be served from the
// prompt cache across calls.
func (p *Pipeline) complete(ctx context.Context, stage, system, prompt string) (string, error) {
	req := anthropic.MessageRequest{
		Model:     p.aiCfg.Model,
		MaxTokens: p.aiCfg.MaxTokens,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	}
	if system != "" {
		block := anthropic.SystemBlock{Text: system}
		if p.aiCfg.CachePrompt {
			block.CacheControl = &anthropic.CacheControl{TTL: "5m"}
		}
		req.System = []anthropic.SystemBlock{block}
	}

	resp, err := p.ai.CreateMessage(ctx, req)
	if err != nil {
		return "", eris.Wrapf(err, "pipeline: %s completion", stage)
	}
	resp.Usage.LogCost(resp.Model, stage)
	return resp.Text(), nil
}

// completeJSON sends one prompt and unmarshals the JSON body of the response
// into out. Markdown fences and surrounding prose are stripped first.
func (p *Pipeline) completeJSON(ctx context.Context, stage, system, prompt string, out any) error {
	text, err := p.complete(ctx, stage, system, prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(cleanJSON(text)), out); err != nil {
		return eris.Wrapf(err, "pipeline: %s parse response", stage)
	}
	return nil
}

// cleanJSON attempts to extract a JSON value from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	// Strip markdown code fences.
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	// Find the outermost object or array.
	objStart := strings.Index(text, "{")
	arrStart := strings.Index(text, "[")
	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		if end := strings.LastIndex(text, "]"); end > arrStart {
			return strings.TrimSpace(text[arrStart : end+1])
		}
	}
	if objStart >= 0 {
		if end := strings.LastIndex(text, "}"); end > objStart {
			return strings.TrimSpace(text[objStart : end+1])
		}
	}
	return strings.TrimSpace(text)
}
