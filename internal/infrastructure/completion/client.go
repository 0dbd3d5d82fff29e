package completion

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"tripmind/internal/config"
	"tripmind/internal/utils/platformerrors"
)

// Client talks to an OpenAI-compatible chat completion endpoint. The
// planner only needs single-shot prose, so there is no streaming surface.
type Client struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	model   string
}

func NewClient(client *resty.Client, cfg *config.Config) *Client {
	return &Client{
		client:  client,
		baseURL: normalizeBaseURL(cfg.CompletionBaseURL),
		apiKey:  cfg.CompletionAPIKey,
		model:   cfg.CompletionModel,
	}
}

// Complete sends one system+user prompt pair and returns the first choice.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	request := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	var respBody openai.ChatCompletionResponse
	resp, err := c.prepareRequest(ctx).
		SetBody(request).
		SetResult(&respBody).
		Post(c.endpoint("/chat/completions"))
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"completion request failed", err, "")
	}
	if resp.IsError() {
		return "", c.errorFromResponse(ctx, resp, "completion request failed")
	}
	if len(respBody.Choices) == 0 {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"completion response contained no choices", nil, "")
	}
	return respBody.Choices[0].Message.Content, nil
}

func (c *Client) prepareRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	req.SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(c.apiKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	return req
}

func (c *Client) endpoint(path string) string {
	if strings.HasPrefix(path, "/") {
		return c.baseURL + path
	}
	return c.baseURL + "/" + path
}

func (c *Client) errorFromResponse(ctx context.Context, resp *resty.Response, message string) error {
	if resp == nil || resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, message, nil, "")
	}
	defer resp.RawResponse.Body.Close()
	body, err := io.ReadAll(resp.RawResponse.Body)
	if err != nil || len(strings.TrimSpace(string(body))) == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, message, nil, "")
	}
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("%s: %s", message, strings.TrimSpace(string(body))), nil, "")
}

func normalizeBaseURL(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}
