package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type summarizeRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters summarizeParameters `json:"parameters"`
}

type summarizeParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type summarizeResult struct {
	SummaryText string `json:"summary_text"`
}

func (c *Client) postSummarize(ctx context.Context, input string) (string, error) {
	body, err := json.Marshal(summarizeRequest{
		Inputs: input,
		Parameters: summarizeParameters{
			MaxLength: 150,
			MinLength: 50,
			DoSample:  false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal summarize request: %w", err)
	}

	url := c.baseURL + "/models/" + c.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create summarize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("summarize request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &HTTPStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	var results []summarizeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("decode summarize response: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("empty summarize response")
	}
	return strings.TrimSpace(results[0].SummaryText), nil
}
