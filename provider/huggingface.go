package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ZaguanLabs/tmt"
)

// nllbCodes maps short language codes to the NLLB locale identifiers the
// model expects. Codes outside this table cannot be translated by this
// provider.
var nllbCodes = map[string]string{
	"en": "eng_Latn",
	"es": "spa_Latn",
	"fr": "fra_Latn",
	"de": "deu_Latn",
	"hi": "hin_Deva",
	"ta": "tam_Taml",
	"te": "tel_Telu",
	"zh": "zho_Hans",
	"ar": "arb_Arab",
	"it": "ita_Latn",
	"pt": "por_Latn",
	"bn": "ben_Beng",
	"mr": "mar_Deva",
	"pa": "pan_Guru",
	"gu": "guj_Gujr",
	"kn": "kan_Knda",
	"ml": "mal_Mlym",
	"ur": "urd_Arab",
	"pl": "pol_Latn",
	"nl": "nld_Latn",
	"ru": "rus_Cyrl",
	"tr": "tur_Latn",
	"vi": "vie_Latn",
	"ja": "jpn_Jpan",
	"ko": "kor_Hang",
}

// HuggingFaceProvider implements Provider using the HuggingFace Inference
// API with an NLLB translation model.
type HuggingFaceProvider struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// HuggingFaceConfig holds configuration for the HuggingFace provider.
type HuggingFaceConfig struct {
	APIKey  string // HuggingFace API token
	ModelID string // Model to use (default: "facebook/nllb-200-distilled-600M")
	BaseURL string // Custom base URL (optional, for tests)
	Timeout time.Duration
}

// NewHuggingFaceProvider creates a new HuggingFace Inference API provider.
func NewHuggingFaceProvider(cfg HuggingFaceConfig) *HuggingFaceProvider {
	model := cfg.ModelID
	if model == "" {
		model = "facebook/nllb-200-distilled-600M"
	}

	base := cfg.BaseURL
	if base == "" {
		base = "https://api-inference.huggingface.co"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &HuggingFaceProvider{
		apiKey:     cfg.APIKey,
		apiURL:     base + "/models/" + model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	SrcLang   string `json:"src_lang"`
	TgtLang   string `json:"tgt_lang"`
	MaxLength int    `json:"max_length"`
}

type hfResult struct {
	TranslationText string `json:"translation_text"`
}

// Translate translates one text through the Inference API.
func (p *HuggingFaceProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if req.Text == "" {
		return "", nil
	}

	src := req.SourceLang
	if src == "" {
		src = "en"
	}
	srcCode, ok := nllbCodes[src]
	if !ok {
		return "", &tmt.ProviderError{
			Message: fmt.Sprintf("unsupported source language %q", src),
		}
	}
	tgtCode, ok := nllbCodes[req.TargetLang]
	if !ok {
		return "", &tmt.ProviderError{
			Message: fmt.Sprintf("unsupported target language %q", req.TargetLang),
		}
	}

	body, err := json.Marshal(hfRequest{
		Inputs: req.Text,
		Parameters: hfParameters{
			SrcLang:   srcCode,
			TgtLang:   tgtCode,
			MaxLength: 300,
		},
	})
	if err != nil {
		return "", &tmt.ProviderError{Message: "encoding request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", &tmt.ProviderError{Message: "building request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", tmt.UserAgent())
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &tmt.ProviderError{
			Message:   "HuggingFace API call failed",
			Cause:     err,
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &tmt.ProviderError{Message: "reading response", Cause: err, Retryable: true}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &tmt.ProviderError{
			Message: fmt.Sprintf("HuggingFace API returned %d: %s",
				resp.StatusCode, truncate(string(data), 200)),
			// 503 means the model is loading; worth retrying.
			Retryable: resp.StatusCode == http.StatusServiceUnavailable ||
				resp.StatusCode == http.StatusTooManyRequests,
		}
	}

	// The API answers either with a list of results or a single object.
	var list []hfResult
	if err := json.Unmarshal(data, &list); err == nil && len(list) > 0 && list[0].TranslationText != "" {
		return list[0].TranslationText, nil
	}
	var single hfResult
	if err := json.Unmarshal(data, &single); err == nil && single.TranslationText != "" {
		return single.TranslationText, nil
	}

	return "", &tmt.ProviderError{
		Message: "invalid response format from HuggingFace",
	}
}

// SupportsLanguage reports whether the NLLB code table covers code.
func (p *HuggingFaceProvider) SupportsLanguage(code string) bool {
	_, ok := nllbCodes[code]
	return ok
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Verify HuggingFaceProvider implements Provider
var _ Provider = (*HuggingFaceProvider)(nil)
