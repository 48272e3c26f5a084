package tts

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// germanVoice is the language of every synthesized word: the game teaches
// German pronunciation regardless of the learner's language.
const germanVoice = "de-DE"

// Client synthesizes German pronunciation audio via the Google Cloud TTS
// REST API and caches the resulting MP3s on disk, so each word is fetched at
// most once.
type Client struct {
	apiKey     string
	cacheDir   string
	mu         sync.Mutex
	httpClient *http.Client
}

// NewClient creates a TTS client. An empty apiKey yields a disabled client:
// Synthesize will fail and callers simply skip the audio. The cache directory
// is only created for an enabled client.
func NewClient(apiKey, cacheDir string) (*Client, error) {
	c := &Client{
		apiKey:   apiKey,
		cacheDir: cacheDir,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	if c.Enabled() {
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			return nil, fmt.Errorf("create tts cache dir: %w", err)
		}
	}

	return c, nil
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

func (c *Client) cacheKey(text string) string {
	h := sha256.Sum256([]byte(germanVoice + ":" + text))
	return hex.EncodeToString(h[:16])
}

// Synthesize returns MP3 audio pronouncing the given German text, from cache
// when available.
func (c *Client) Synthesize(text string) ([]byte, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("tts disabled: no API key")
	}

	cachePath := filepath.Join(c.cacheDir, c.cacheKey(text)+".mp3")
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check cache after acquiring the lock.
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	data, err := c.callGoogleTTS(text)
	if err != nil {
		return nil, err
	}

	// Failed cache writes are not fatal, the audio is already in hand.
	os.WriteFile(cachePath, data, 0o644)

	return data, nil
}

func (c *Client) callGoogleTTS(text string) ([]byte, error) {
	url := "https://texttospeech.googleapis.com/v1/text:synthesize?key=" + c.apiKey

	reqBody := map[string]interface{}{
		"input": map[string]string{
			"text": text,
		},
		"voice": map[string]interface{}{
			"languageCode": germanVoice,
			"ssmlGender":   "FEMALE",
		},
		"audioConfig": map[string]string{
			"audioEncoding": "MP3",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS API error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}

	return audio, nil
}
