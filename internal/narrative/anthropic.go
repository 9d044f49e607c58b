package narrative

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/fleetwise-id/armada-insight/internal/analysis"
)

// systemPrompt forbids advice so the model output survives the neutrality
// sanitizer instead of being cut down to nothing.
const systemPrompt = "Anda menghasilkan deskripsi objektif dalam Bahasa Indonesia untuk laporan finansial armada. " +
	"Dilarang memberi saran, rekomendasi, atau ajakan bertindak. Jangan gunakan kata seperti " +
	"'harus', 'sebaiknya', 'disarankan', 'strategi', atau 'langkah'. " +
	"Jawab dengan dua sampai tiga kalimat deskriptif tanpa format tambahan."

type llmFailureClass int

const (
	failureNone llmFailureClass = iota
	failureEmpty
	failureTimeout
	failureRateLimit
	failureServer
	failureClient
)

// LLMCaller is the raw text-generation transport. The retry and prompt
// logic in Narrator sits on top of it.
type LLMCaller interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type AnthropicCaller struct {
	messages  AnthropicMessager
	model     anthropic.Model
	maxTokens int64
}

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

// NewAnthropicCallerFromEnv reads ANTHROPIC_API_KEY. An empty model falls
// back to the default production model.
func NewAnthropicCallerFromEnv(model string, maxTokens int64) (*AnthropicCaller, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	m := anthropic.ModelClaudeSonnet4_20250514
	if model != "" {
		m = anthropic.Model(model)
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &AnthropicCaller{messages: newAnthropicClient(apiKey), model: m, maxTokens: maxTokens}, nil
}

func (a *AnthropicCaller) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0.3),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

// Narrator implements the engine's narrative port with per-call retries.
// Transport failures worth retrying (timeouts, rate limits, server errors)
// back off and retry; client errors fail immediately. An empty response
// gets one corrective feedback round before giving up.
type Narrator struct {
	caller LLMCaller
}

func NewNarrator(caller LLMCaller) *Narrator {
	return &Narrator{caller: caller}
}

func (n *Narrator) Narrate(ctx context.Context, req analysis.NarrativeRequest) (string, error) {
	prompt := buildPrompt(req)
	feedback := ""
	for attempt := 1; attempt <= 3; attempt++ {
		fullPrompt := prompt
		if feedback != "" {
			fullPrompt += "\n\n" + feedback
		}

		raw, err := n.caller.GenerateText(ctx, fullPrompt)
		if err != nil {
			class := classifyTransportError(err)
			if class == failureTimeout || class == failureRateLimit || class == failureServer {
				if attempt < 3 {
					select {
					case <-time.After(backoffDelay(attempt)):
						continue
					case <-ctx.Done():
						return "", ctx.Err()
					}
				}
			}
			return "", fmt.Errorf("narrative %s transport failure: %w", req.Dimension, err)
		}

		text := strings.TrimSpace(stripCodeFences(raw))
		if text == "" {
			if attempt < 3 {
				feedback = "Respons sebelumnya kosong. Tulis deskripsi singkat dalam Bahasa Indonesia."
				continue
			}
			return "", fmt.Errorf("narrative %s failed: empty response", req.Dimension)
		}
		return text, nil
	}
	return "", fmt.Errorf("narrative %s failed after retries", req.Dimension)
}

func buildPrompt(req analysis.NarrativeRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Deskripsikan kondisi finansial unit %q pada segmen %q untuk dimensi %s.\n",
		req.UnitName, req.Segment, req.Dimension)
	fmt.Fprintf(&sb, "Kategori hasil perhitungan: %s.\n\nAngka terhitung:\n", req.Category)
	for _, f := range req.Facts {
		fmt.Fprintf(&sb, "- %s: %s\n", f.Name, f.Value)
	}
	sb.WriteString("\nGunakan hanya angka di atas. Jangan menghitung ulang dan jangan menambah angka baru.")
	return sb.String()
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "text")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

func classifyTransportError(err error) llmFailureClass {
	msg := strings.ToLower(err.Error())
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return failureTimeout
	}
	switch {
	case strings.Contains(msg, "429"):
		return failureRateLimit
	case strings.Contains(msg, " 5") || strings.Contains(msg, "status code: 5") || strings.Contains(msg, "server error"):
		return failureServer
	case strings.Contains(msg, " 4") || strings.Contains(msg, "status code: 4"):
		return failureClient
	default:
		return failureServer
	}
}

func backoffDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 1 * time.Second
	}
	return 2 * time.Second
}

var _ analysis.Narrator = (*Narrator)(nil)
