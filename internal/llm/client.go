// Package llm is the compiler cascade's last-resort tier: it turns a
// restriction string that missed every builtin table and the compile cache
// into a policy.Policy via a single Anthropic Messages API call, forced
// through a tool-use schema so the response is always a well-formed Policy
// rather than prose to be parsed.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cenkalti/backoff/v5"
	"github.com/invopop/jsonschema"

	"github.com/gzhole/veto/internal/policy"
)

// ErrMissingAPIKey is returned by NewClient when ANTHROPIC_API_KEY is unset.
// The compiler cascade treats this as a terminal error: there is no
// sensible fallback once the builtin tables and cache have both missed.
var ErrMissingAPIKey = errors.New("llm: ANTHROPIC_API_KEY is not set")

const model = anthropic.ModelClaudeSonnet4_5

// toolName is the single tool the model is forced to call; its input schema
// is generated once from policy.Policy and reused for every request.
const toolName = "emit_policy"

// Client compiles restriction strings the builtin tables and cache both
// missed, via a schema-constrained Anthropic tool call.
type Client struct {
	api    anthropic.Client
	schema *jsonschema.Schema
}

// NewClient builds a Client from ANTHROPIC_API_KEY in the environment.
func NewClient() (*Client, error) {
	key := os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		return nil, ErrMissingAPIKey
	}

	reflector := &jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	schema := reflector.Reflect(&policy.Policy{})

	return &Client{
		api:    anthropic.NewClient(option.WithAPIKey(key)),
		schema: schema,
	}, nil
}

// Compile asks the model to translate a natural-language restriction into a
// Policy. Retries on rate-limit (429) and service-unavailable (5xx) signals
// use an exponential backoff (base 4s, factor 2, up to 1s jitter, 4
// attempts).
func (c *Client) Compile(ctx context.Context, restriction string) (policy.Policy, error) {
	op := func() (policy.Policy, error) {
		p, err := c.compileOnce(ctx, restriction)
		if err != nil && isRetryable(err) {
			return policy.Policy{}, err
		}
		if err != nil {
			return policy.Policy{}, backoff.Permanent(err)
		}
		return p, nil
	}

	eb := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(4*time.Second),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0.25), // keeps jitter within the documented ≤1s at the first retry
	)

	p, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(eb),
		backoff.WithMaxTries(4),
	)
	if err != nil {
		return policy.Policy{}, fmt.Errorf("llm: compile %q: %w", restriction, err)
	}
	return p, nil
}

func (c *Client) compileOnce(ctx context.Context, restriction string) (policy.Policy, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(restriction)),
		},
		Tools: []anthropic.ToolUnionParam{
			{
				OfTool: &anthropic.ToolParam{
					Name:        toolName,
					Description: anthropic.String("Emit the compiled policy for the restriction."),
					InputSchema: toInputSchema(c.schema),
				},
			},
		},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: toolName},
		},
	})
	if err != nil {
		return policy.Policy{}, err
	}

	for _, block := range msg.Content {
		tu := block.AsToolUse()
		if tu.Name != toolName {
			continue
		}
		var p policy.Policy
		if err := json.Unmarshal(tu.Input, &p); err != nil {
			return policy.Policy{}, fmt.Errorf("llm: malformed tool input: %w", err)
		}
		if err := p.Compile(); err != nil {
			return policy.Policy{}, fmt.Errorf("llm: model produced an invalid policy: %w", err)
		}
		return p, nil
	}
	return policy.Policy{}, errors.New("llm: model response contained no emit_policy tool call")
}

func toInputSchema(s *jsonschema.Schema) anthropic.ToolInputSchemaParam {
	raw, _ := json.Marshal(s)
	var props map[string]any
	_ = json.Unmarshal(raw, &props)
	return anthropic.ToolInputSchemaParam{
		Properties: props["properties"],
	}
}

func isRetryable(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 500, 502, 503, 529:
			return true
		}
	}
	return false
}

const systemPrompt = `You translate a developer's plain-language file, command, or code restriction into a single structured policy. Classify the action as delete, modify, execute, or read. Prefer glob patterns for file-based restrictions, command patterns for shell restrictions, and leave content/AST rules empty unless the restriction clearly targets code content rather than files or commands. Never invent a restriction the input did not ask for.`
