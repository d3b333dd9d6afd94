package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	extractTimeout      = 25 * time.Second
	extractDefaultChars = 1200
	extractMaxBodyBytes = 1 << 20 // 1MB，正文响应体上限
)

// ExtractorClient 调用 article-extractor 边车服务抓取文章正文
type ExtractorClient struct {
	BaseURL string
	Client  *http.Client
}

func NewExtractorClient(baseURL string) *ExtractorClient {
	return &ExtractorClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: extractTimeout},
	}
}

type extractRequest struct {
	URL      string `json:"url"`
	MaxChars int    `json:"maxChars"`
}

type extractResponse struct {
	OK    bool   `json:"ok"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// Extract 请求一个链接的正文全文，出错时由调用方决定兜底
func (e *ExtractorClient) Extract(ctx context.Context, articleURL string, maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = extractDefaultChars
	}

	payload, err := json.Marshal(extractRequest{URL: articleURL, MaxChars: maxChars})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/extract", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extractor status %d", resp.StatusCode)
	}

	var out extractResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, extractMaxBodyBytes)).Decode(&out); err != nil {
		return "", err
	}
	if !out.OK {
		return "", fmt.Errorf("extractor: %s", out.Error)
	}
	return out.Text, nil
}
