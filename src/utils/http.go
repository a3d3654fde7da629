package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var httpClient = http.Client{
	Timeout: 10 * time.Second,
}

// FetchJSONWithBearer performs an authenticated GET and decodes the JSON body
// into out.
func FetchJSONWithBearer(endpoint, bearerToken string, query url.Values, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("FetchJSONWithBearer: failed to create request: %w", err)
	}

	req.URL.RawQuery = query.Encode()
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", bearerToken))

	res, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("FetchJSONWithBearer: request failed: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("FetchJSONWithBearer: unexpected http code %v", res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("FetchJSONWithBearer: failed to decode json: %w", err)
	}

	return nil
}
