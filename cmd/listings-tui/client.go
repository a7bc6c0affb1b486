package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rental-server/entities"

	tea "github.com/charmbracelet/bubbletea"
)

type listingsLoadedMsg []entities.Property
type listingSavedMsg struct{ note string }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// call sends one request to the listing API and decodes the data field of a
// successful response into out, when out is non-nil.
func call(apiURL, token, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	url := strings.TrimRight(apiURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach %s: %w", apiURL, err)
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("unexpected response (%s)", resp.Status)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if envelope.Message == "" {
			envelope.Message = resp.Status
		}
		return errors.New(envelope.Message)
	}
	if out != nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, out)
	}
	return nil
}

// fetchMyListings loads the agent's own listings from the API.
func fetchMyListings(apiURL, token string) tea.Cmd {
	return func() tea.Msg {
		var props []entities.Property
		if err := call(apiURL, token, http.MethodGet, "/api/properties/agent/my-properties", nil, &props); err != nil {
			return errMsg{err}
		}
		return listingsLoadedMsg(props)
	}
}

func createListing(apiURL, token string, payload map[string]interface{}) tea.Cmd {
	return func() tea.Msg {
		if err := call(apiURL, token, http.MethodPost, "/api/properties", payload, nil); err != nil {
			return errMsg{err}
		}
		return listingSavedMsg{note: "Listing created"}
	}
}

// updateListing sends a partial update; fields missing from payload are kept.
func updateListing(apiURL, token, id string, payload map[string]interface{}, note string) tea.Cmd {
	return func() tea.Msg {
		if err := call(apiURL, token, http.MethodPut, "/api/properties/"+id, payload, nil); err != nil {
			return errMsg{err}
		}
		return listingSavedMsg{note: note}
	}
}

func deleteListing(apiURL, token, id string) tea.Cmd {
	return func() tea.Msg {
		if err := call(apiURL, token, http.MethodDelete, "/api/properties/"+id, nil, nil); err != nil {
			return errMsg{err}
		}
		return listingSavedMsg{note: "Listing deleted"}
	}
}
