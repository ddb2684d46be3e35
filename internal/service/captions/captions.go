package captions

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
)

// Service defines operations for fetching timed captions for a video
type Service interface {
	// Fetch returns the English caption track for a video, segment order
	// preserved. Any failure (no captions, wrong language, transient
	// error) is returned as an error; callers treat all reasons
	// identically and fall back to audio transcription.
	Fetch(ctx context.Context, videoID string) ([]model.CaptionItem, error)
}

// service implements Service by scraping the watch page player response
// for caption track URLs and fetching the timedtext XML
type service struct {
	httpClient *http.Client
	watchBase  string
}

// NewService creates a new captions Service
func NewService() Service {
	return &service{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		watchBase:  "https://www.youtube.com",
	}
}

// NewServiceWithHTTPClient creates a captions Service with a custom HTTP
// client and base URL (for testing)
func NewServiceWithHTTPClient(client *http.Client, watchBase string) Service {
	return &service{
		httpClient: client,
		watchBase:  watchBase,
	}
}

// playerResponseMarker marks the start of the player response JSON in the
// watch page HTML
const playerResponseMarker = "ytInitialPlayerResponse = "

// captionTrack is one entry of the player response caption track list
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated tracks
}

// playerResponse is the subset of the watch page player JSON we need
type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// timedText is the XML document served by the caption track base URL
type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Body     string  `xml:",chardata"`
	} `xml:"text"`
}

// Fetch retrieves the English caption track for the given video
func (s *service) Fetch(ctx context.Context, videoID string) ([]model.CaptionItem, error) {
	if videoID == "" {
		return nil, errors.New(errors.CodeInvalidArg, "video ID is required")
	}

	tracks, err := s.listTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, ok := pickEnglishTrack(tracks)
	if !ok {
		return nil, errors.New(errors.CodeExternal, "no English caption track available")
	}

	items, err := s.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New(errors.CodeExternal, "caption track is empty")
	}

	return items, nil
}

// listTracks scrapes the watch page and extracts the caption track list
// from the embedded player response JSON
func (s *service) listTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	watchURL := fmt.Sprintf("%s/watch?v=%s", s.watchBase, videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to build watch page request")
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to fetch watch page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.CodeExternal, fmt.Sprintf("watch page returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to read watch page")
	}

	idx := strings.Index(string(body), playerResponseMarker)
	if idx < 0 {
		return nil, errors.New(errors.CodeExternal, "player response not found in watch page")
	}

	jsonData := extractJSONObject(body[idx+len(playerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New(errors.CodeExternal, "failed to extract player response JSON")
	}

	var player playerResponse
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to decode player response")
	}
	if player.Captions == nil {
		return nil, errors.New(errors.CodeExternal, "video has no captions")
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New(errors.CodeExternal, "video has no caption tracks")
	}
	return tracks, nil
}

// pickEnglishTrack selects the English track, preferring manually authored
// captions over auto-generated ("asr") ones
func pickEnglishTrack(tracks []captionTrack) (captionTrack, bool) {
	var asr captionTrack
	var haveASR bool

	for _, track := range tracks {
		lang := strings.ToLower(track.LanguageCode)
		if lang != "en" && !strings.HasPrefix(lang, "en-") {
			continue
		}
		if track.Kind == "asr" {
			if !haveASR {
				asr = track
				haveASR = true
			}
			continue
		}
		return track, true
	}
	return asr, haveASR
}

// fetchTimedText downloads and parses the caption XML for a track
func (s *service) fetchTimedText(ctx context.Context, baseURL string) ([]model.CaptionItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to build timedtext request")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to fetch caption track")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.CodeExternal, fmt.Sprintf("caption track returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to read caption track")
	}

	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to parse caption XML")
	}

	items := make([]model.CaptionItem, 0, len(doc.Texts))
	for _, text := range doc.Texts {
		// Caption bodies are frequently double-escaped (&amp;#39;)
		content := strings.TrimSpace(html.UnescapeString(html.UnescapeString(text.Body)))
		if content == "" {
			continue
		}
		items = append(items, model.CaptionItem{
			Start:    text.Start,
			Duration: text.Duration,
			Text:     content,
		})
	}
	return items, nil
}

// extractJSONObject returns the balanced JSON object at the start of data,
// or nil if braces never balance. Quote and escape aware.
func extractJSONObject(data []byte) []byte {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}

	depth := 0
	inString := false
	escaped := false

	for i, c := range data {
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return data[:i+1]
				}
			}
		}
	}
	return nil
}
