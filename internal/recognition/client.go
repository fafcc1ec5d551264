package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client calls the external breed-recognition service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Recognize(ctx context.Context, imageURL string) (Result, error) {
	payload, err := json.Marshal(map[string]string{"image_url": imageURL})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recognize", bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("recognizer status %d", resp.StatusCode)
	}

	var raw struct {
		Success    bool    `json:"success"`
		Species    string  `json:"species"`
		Breed      string  `json:"breed"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Result{}, err
	}

	result := Result{Success: raw.Success, Confidence: raw.Confidence}
	if raw.Confidence >= ConfidenceThreshold {
		result.Species = raw.Species
		result.Breed = raw.Breed
	} else {
		result.SuggestedSpecies = raw.Species
		result.SuggestedBreed = raw.Breed
	}
	return result, nil
}
