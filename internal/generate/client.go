package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// exampleRotation anchors the model on the exact wire format the builder
// saves and loads.
const exampleRotation = `{"actions":[{"id":"m5rdpelp4ig0kswi1i9","target":"Target","weight":1,"priority":0,"spellName":"test","conditions":{"type":"Composite","groups":[{"operator":"AND","conditions":[{"type":"HP","value":22,"operator":">"}]}]},"interruptible":false},{"id":"m5snthh7acmslx8n5ri","target":"Target","weight":1,"priority":0,"spellName":"test spell","conditions":{"type":"Composite","groups":[{"operator":"AND","conditions":[{"type":"Aura","stacks":{"count":0,"operator":">"},"target":"Self","auraName":"test aura","auraType":"Buff","duration":{"operator":">","remaining":0},"checkType":"presence","isPresent":true}]}]},"interruptible":false}]}`

const promptTemplate = `You are a World of Warcraft rotation builder assistant. Using the following example format as a reference:
%s

Create a new rotation based on this request: "%s"

Rules:
1. Each action needs a unique ID (use format similar to example)
2. Include proper conditions based on the class/spec requirements
3. Set appropriate weights and priorities
4. Return ONLY valid JSON that matches the example format
5. Consider buff/debuff tracking, resource management, and cooldown priorities
6. For spell names, use actual World of Warcraft spell names
7. Ensure all conditions are properly nested in groups with AND/OR operators
8. Set realistic values for HP percentages, resource costs, and cooldown checks
9. DO NOT include any explanatory text or comments - ONLY the JSON object

Return ONLY a valid JSON object with no additional text or formatting.`

// Client produces raw model text for a rotation prompt. The HTTP
// implementation talks to a Gemini-style generateContent endpoint.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// HTTPClient calls the generative language REST API.
type HTTPClient struct {
	Endpoint string
	Model    string
	APIKey   string
	http     *http.Client
}

// NewHTTPClient creates a model client with a generous timeout, model
// calls routinely take tens of seconds.
func NewHTTPClient(endpoint, model, apiKey string) *HTTPClient {
	return &HTTPClient{
		Endpoint: endpoint,
		Model:    model,
		APIKey:   apiKey,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends the formatted rotation prompt and returns the raw model
// text, fences and all; CleanResponse handles the rest.
func (c *HTTPClient) Generate(ctx context.Context, prompt string) (string, error) {
	formatted := fmt.Sprintf(promptTemplate, exampleRotation, prompt)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: formatted}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.Endpoint, c.Model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model endpoint returned %d: %s", resp.StatusCode, raw)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
