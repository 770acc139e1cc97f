package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/config"
	"gstbill/internal/parser"
	openai "gstbill/internal/parser/openai"
	"gstbill/internal/port"
)

func newOpenAITestParser(serverURL string) *openai.Parser {
	cfg := &config.ParserProviderConfig{
		Provider:     "openai",
		APIKey:       "test-openai-key",
		DefaultModel: "gpt-4o",
		TimeoutSecs:  30,
	}
	return openai.NewParserWithEndpoint(cfg, serverURL)
}

func openaiSuccessResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func TestOpenAIParser_Parse_PDF_Success(t *testing.T) {
	llmJSON := `{"document_type":"purchase_order","po":"PO-4711","billing":{"name":"Acme Projects","state":"Uttar Pradesh","state_code":"09"}}`
	responseBody := openaiSuccessResponse(llmJSON)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-openai-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "gpt-4o", reqBody["model"])
		assert.Equal(t, float64(4096), reqBody["max_completion_tokens"])

		format := reqBody["response_format"].(map[string]interface{})
		assert.Equal(t, "json_object", format["type"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 1)
		msg := messages[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])

		content := msg["content"].([]interface{})
		assert.Len(t, content, 2)

		fileBlock := content[0].(map[string]interface{})
		assert.Equal(t, "file", fileBlock["type"])

		textBlock := content[1].(map[string]interface{})
		assert.Equal(t, "text", textBlock["type"])
		assert.Equal(t, "extract the order", textBlock["text"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	p := newOpenAITestParser(server.URL)

	result, err := p.Parse(context.Background(), port.ParseInput{
		FileBytes:   []byte("%PDF-1.4 test content"),
		ContentType: "application/pdf",
		Prompt:      "extract the order",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "gpt-4o", result.ModelUsed)
	assert.Equal(t, "extract the order", result.PromptUsed)

	var data map[string]interface{}
	err = json.Unmarshal(result.RawJSON, &data)
	assert.NoError(t, err)
	assert.Equal(t, "PO-4711", data["po"])
}

func TestOpenAIParser_Parse_Image_UsesImageURLBlock(t *testing.T) {
	responseBody := openaiSuccessResponse(`{"document_type":"invoice"}`)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		messages := reqBody["messages"].([]interface{})
		msg := messages[0].(map[string]interface{})
		content := msg["content"].([]interface{})

		imgBlock := content[0].(map[string]interface{})
		assert.Equal(t, "image_url", imgBlock["type"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	p := newOpenAITestParser(server.URL)

	_, err := p.Parse(context.Background(), port.ParseInput{
		FileBytes:   []byte{0xFF, 0xD8, 0xFF},
		ContentType: "image/jpeg",
		Prompt:      "extract",
	})
	require.NoError(t, err)
}

func TestOpenAIParser_Parse_UnsupportedContentType(t *testing.T) {
	p := newOpenAITestParser("http://unused")

	_, err := p.Parse(context.Background(), port.ParseInput{
		FileBytes:   []byte("plain text"),
		ContentType: "text/plain",
		Prompt:      "extract",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestOpenAIParser_Parse_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "17")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer server.Close()

	p := newOpenAITestParser(server.URL)

	_, err := p.Parse(context.Background(), port.ParseInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
		Prompt:      "extract",
	})
	require.Error(t, err)

	var rlErr *parser.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "openai", rlErr.Provider)
	assert.Equal(t, 17, int(rlErr.RetryAfter.Seconds()))
}

func TestOpenAIParser_Parse_TruncatedOutput(t *testing.T) {
	responseBody := map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]interface{}{"content": `{"partial":`},
				"finish_reason": "length",
			},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	p := newOpenAITestParser(server.URL)

	_, err := p.Parse(context.Background(), port.ParseInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
		Prompt:      "extract",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestOpenAIParser_Parse_StripsCodeFences(t *testing.T) {
	responseBody := openaiSuccessResponse("```json\n{\"document_type\":\"invoice\"}\n```")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	p := newOpenAITestParser(server.URL)

	result, err := p.Parse(context.Background(), port.ParseInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
		Prompt:      "extract",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"document_type":"invoice"}`, string(result.RawJSON))
}

func TestOpenAIParser_Parse_InvalidJSONOutput(t *testing.T) {
	responseBody := openaiSuccessResponse("I could not read the document, sorry.")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(responseBody)
	}))
	defer server.Close()

	p := newOpenAITestParser(server.URL)

	_, err := p.Parse(context.Background(), port.ParseInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
		Prompt:      "extract",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}
