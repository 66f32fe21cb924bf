// services/tagline_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"

	"go.uber.org/zap"
)

// TaglineServiceError özel servis hataları
type TaglineServiceError string

func (e TaglineServiceError) Error() string { return string(e) }

const (
	ErrTaglineNotConfigured TaglineServiceError = "slogan servisi yapılandırılmamış"
	ErrTaglineInputMissing  TaglineServiceError = "slogan üretimi için meslek veya işletme bilgisi gerekli"
	ErrTaglineFailed        TaglineServiceError = "slogan üretilemedi"
)

const (
	taglineDefaultBaseURL = "https://api.openai.com/v1/chat/completions"
	taglineModel          = "gpt-4o-mini"
	taglineMaxLength      = 120
	taglineHTTPTimeout    = 15 * time.Second
)

// TaglineInput kart formundaki "slogan öner" isteğinin verisi.
type TaglineInput struct {
	JobTitle            string `json:"jobTitle"`
	BusinessName        string `json:"businessName"`
	BusinessDescription string `json:"businessDescription"`
}

// ITaglineService kart için kısa slogan üretir.
type ITaglineService interface {
	GenerateTagline(ctx context.Context, input TaglineInput) (string, error)
}

// TaglineService ITaglineService'in chat-completions implementasyonu.
type TaglineService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewTaglineService API anahtarını ortamdan okur. Anahtar yoksa servis
// yine oluşturulur; her çağrı ErrTaglineNotConfigured döner.
func NewTaglineService() ITaglineService {
	return &TaglineService{
		apiKey:  configs.GetEnv("OPENAI_API_KEY", ""),
		baseURL: configs.GetEnv("OPENAI_BASE_URL", taglineDefaultBaseURL),
		client:  &http.Client{Timeout: taglineHTTPTimeout},
	}
}

// NewTaglineServiceWithEndpoint test için uç noktayı enjekte eder.
func NewTaglineServiceWithEndpoint(apiKey, baseURL string, client *http.Client) ITaglineService {
	if client == nil {
		client = &http.Client{Timeout: taglineHTTPTimeout}
	}
	return &TaglineService{apiKey: apiKey, baseURL: baseURL, client: client}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// GenerateTagline verilen meslek/işletme bilgisinden tek cümlelik slogan üretir.
func (s *TaglineService) GenerateTagline(ctx context.Context, input TaglineInput) (string, error) {
	if s.apiKey == "" {
		return "", ErrTaglineNotConfigured
	}
	jobTitle := strings.TrimSpace(input.JobTitle)
	businessName := strings.TrimSpace(input.BusinessName)
	description := strings.TrimSpace(input.BusinessDescription)
	if jobTitle == "" && businessName == "" && description == "" {
		return "", ErrTaglineInputMissing
	}

	var sb strings.Builder
	sb.WriteString("Dijital kartvizit için kısa, akılda kalıcı, tek cümlelik bir slogan yaz. ")
	sb.WriteString("Tırnak işareti kullanma, sadece sloganı döndür.")
	if jobTitle != "" {
		fmt.Fprintf(&sb, " Meslek: %s.", jobTitle)
	}
	if businessName != "" {
		fmt.Fprintf(&sb, " İşletme: %s.", businessName)
	}
	if description != "" {
		fmt.Fprintf(&sb, " Açıklama: %s.", description)
	}

	reqBody := chatRequest{
		Model: taglineModel,
		Messages: []chatMessage{
			{Role: "system", Content: "Kısa ve profesyonel sloganlar üreten bir metin yazarısın."},
			{Role: "user", Content: sb.String()},
		},
		MaxTokens:   60,
		Temperature: 0.8,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", ErrTaglineFailed
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", ErrTaglineFailed
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		configslog.Log.Error("Slogan servisi isteği başarısız", zap.Error(err))
		return "", ErrTaglineFailed
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ErrTaglineFailed
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr chatError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			configslog.Log.Error("Slogan servisi hata döndü",
				zap.Int("status", resp.StatusCode), zap.String("message", apiErr.Error.Message))
		} else {
			configslog.Log.Error("Slogan servisi hata döndü", zap.Int("status", resp.StatusCode))
		}
		return "", ErrTaglineFailed
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil || len(chatResp.Choices) == 0 {
		return "", ErrTaglineFailed
	}

	tagline := strings.Trim(strings.TrimSpace(chatResp.Choices[0].Message.Content), `"`)
	if tagline == "" {
		return "", ErrTaglineFailed
	}
	// Model uzun yazarsa form alanı sınırına kırpılır.
	if len([]rune(tagline)) > taglineMaxLength {
		tagline = string([]rune(tagline)[:taglineMaxLength])
	}
	return tagline, nil
}

var _ ITaglineService = (*TaglineService)(nil)
