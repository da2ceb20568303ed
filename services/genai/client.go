package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/tmc/langchaingo/llms"
)

// Object is one parsed and validated output object from the model.
type Object = map[string]any

const defaultMaxAttempts = 3

// Request describes one structured generation call.
type Request struct {
	// SystemPrompt states the task and its constraints.
	SystemPrompt string
	// Prompt is the content to generate from. Ignored when BatchPrompts is set.
	Prompt string
	// BatchPrompts enables batch mode: the model must return an array of
	// objects, one per input element.
	BatchPrompts []string
	// Shape is the expected output shape. Every non-placeholder key must be
	// present in each output object.
	Shape Shape
	// Fallback is substituted for enum field values outside the choice set.
	Fallback string
	// Temperature defaults to 1.
	Temperature float64
	// MaxAttempts defaults to 3.
	MaxAttempts int
	// Verbose logs prompts and raw responses for each attempt.
	Verbose bool
}

// attempt records one failed generation round. Prior attempts are rendered
// back into the next prompt so the model can correct itself.
type attempt struct {
	raw       string
	sanitized string
	err       error
}

// Client wraps a generative model behind a strict-schema contract: given a
// prompt and an expected output shape it produces validated objects or
// exhausts its retries.
type Client struct {
	llm llms.Model
}

func NewClient(llm llms.Model) *Client {
	return &Client{llm: llm}
}

// Generate runs the generation loop. It returns one object per input
// element in batch mode, otherwise a single-element slice. When every
// attempt fails it returns an empty slice; it never returns an error, the
// caller decides whether an empty result is fatal.
func (c *Client) Generate(ctx context.Context, req Request) []Object {
	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	temperature := req.Temperature
	if temperature <= 0 {
		temperature = 1
	}

	batch := req.BatchPrompts != nil
	formatPrompt := buildFormatPrompt(req.Shape, batch)
	userPrompt := req.Prompt
	if batch {
		userPrompt = strings.Join(req.BatchPrompts, "\n")
	}

	var attempts []attempt
	for i := 0; i < maxAttempts; i++ {
		prompt := req.SystemPrompt + formatPrompt + renderAttempts(attempts) + "\n" + userPrompt

		raw, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithTemperature(temperature))
		if err != nil {
			log.Printf("[ERROR] Generation attempt %d/%d failed: %v", i+1, maxAttempts, err)
			attempts = append(attempts, attempt{err: err})
			continue
		}

		sanitized := sanitizeJSON(raw)
		if req.Verbose {
			log.Printf("[INFO] Prompt: %s", prompt)
			log.Printf("[INFO] Raw output: %s", raw)
			log.Printf("[INFO] Sanitized output: %s", sanitized)
		}

		objects, err := parseOutput(sanitized, batch)
		if err == nil {
			err = validateObjects(objects, req)
		}
		if err != nil {
			log.Printf("[ERROR] Generation attempt %d/%d rejected: %v", i+1, maxAttempts, err)
			attempts = append(attempts, attempt{raw: raw, sanitized: sanitized, err: err})
			continue
		}

		return objects
	}

	log.Printf("[ERROR] Generation produced no usable output after %d attempts", maxAttempts)
	return []Object{}
}

// GenerateValues is Generate in values-only mode: each output object is
// replaced by its values in key order, unwrapped to a scalar when the
// object has exactly one field.
func (c *Client) GenerateValues(ctx context.Context, req Request) []any {
	objects := c.Generate(ctx, req)

	values := make([]any, 0, len(objects))
	for _, obj := range objects {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		vals := make([]any, 0, len(keys))
		for _, k := range keys {
			vals = append(vals, obj[k])
		}
		if len(vals) == 1 {
			values = append(values, vals[0])
		} else {
			values = append(values, vals)
		}
	}
	return values
}

func buildFormatPrompt(shape Shape, batch bool) string {
	var b strings.Builder
	b.WriteString("\nYou are to output ")
	if batch {
		b.WriteString("an array of objects in ")
	}
	fmt.Fprintf(&b, "the following in json format: %s.\nDo not put quotation marks or escape character \\ in the output fields.", shape.render())

	if shape.hasEnum() {
		b.WriteString("\nIf output field is a list, classify output into the best element of the list.")
	}
	if shape.hasPlaceholders() {
		b.WriteString("\nAny text enclosed by < and > indicates you must generate content to replace it. Example input: Go to <location>, Example output: Go to the garden.")
		b.WriteString("\nAny output key containing < and > indicates you must generate the key name to replace it. Example input: {'<location>': 'description of location'}, Example output: {school: a place for education}.")
	}
	if batch {
		b.WriteString("\nGenerate an array of json, one json for each input element.")
	}
	return b.String()
}

func renderAttempts(attempts []attempt) string {
	var b strings.Builder
	for _, a := range attempts {
		if a.raw == "" && a.sanitized == "" {
			fmt.Fprintf(&b, "\n\nPrevious attempt failed before producing output.\n\nError message: %v", a.err)
			continue
		}
		fmt.Fprintf(&b, "\n\nResult: %s\n\nSanitized: %s\n\nError message: %v", a.raw, a.sanitized, a.err)
	}
	return b.String()
}

func parseOutput(sanitized string, batch bool) ([]Object, error) {
	if batch {
		var objects []Object
		if err := json.Unmarshal([]byte(sanitized), &objects); err != nil {
			return nil, fmt.Errorf("output format not in an array of json: %w", err)
		}
		return objects, nil
	}

	var object Object
	if err := json.Unmarshal([]byte(sanitized), &object); err != nil {
		return nil, fmt.Errorf("output is not a json object: %w", err)
	}
	return []Object{object}, nil
}

func validateObjects(objects []Object, req Request) error {
	for _, obj := range objects {
		for key, field := range req.Shape {
			if isPlaceholderKey(key) {
				continue
			}
			value, ok := obj[key]
			if !ok {
				return fmt.Errorf("%s not in json output", key)
			}
			if choices := field.Choices(); choices != nil {
				obj[key] = coerceChoice(value, choices, req.Fallback)
			}
		}
	}
	return nil
}

// coerceChoice normalizes an enum field value: an array collapses to its
// first element; a value outside the choice set is replaced by its closest
// fuzzy match against the choices, or by the fallback; a "label: detail"
// value is truncated at the colon.
func coerceChoice(value any, choices []string, fallback string) string {
	if arr, ok := value.([]any); ok && len(arr) > 0 {
		value = arr[0]
	}

	s, ok := value.(string)
	if !ok {
		s = fmt.Sprint(value)
	}

	if !lo.Contains(choices, s) {
		if match := closestChoice(s, choices); match != "" {
			s = match
		} else if fallback != "" {
			s = fallback
		}
	}

	if i := strings.Index(s, ":"); i >= 0 {
		s = s[:i]
	}
	return s
}

func closestChoice(value string, choices []string) string {
	ranks := fuzzy.RankFindNormalizedFold(value, choices)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
