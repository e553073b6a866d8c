package qrz

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Station-Manager/errors"

	"github.com/Station-Manager/logbook/adif"
)

// genericAgentSubstrings are library default user agents the API operator
// asks clients not to use; requests carrying them are rejected before they
// reach the wire. Bare "curl" and "wget" are rejected by exact match only,
// so an identifiable agent that merely mentions libcurl stays valid.
var genericAgentSubstrings = []string{"python-requests", "node-fetch"}

// makeRequest POSTs the given form parameters to the configured endpoint
// and returns the raw response body.
func (s *Service) makeRequest(ctx context.Context, params url.Values) (string, error) {
	const op errors.Op = "qrz.Service.makeRequest"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Config.URL, strings.NewReader(params.Encode()))
	if err != nil {
		return "", errors.New(op).Err(err).Msg("Failed to create HTTP POST request")
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", s.Config.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.New(op).Err(err).Msg("Failed to perform HTTP POST request")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", errors.New(op).Errorf("Service returned unexpected status %d: %s", resp.StatusCode, string(b))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.New(op).Errorf("Failed to read response body: %w", err)
	}

	return string(body), nil
}

// parseResponseParams splits a KEY=VALUE&KEY=VALUE response body into a
// map, URL-unescaping keys and values. Segments without '=' are skipped.
func parseResponseParams(op errors.Op, body string) (map[string]string, error) {
	params := make(map[string]string)

	for _, pair := range strings.Split(body, "&") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}

		decodedKey, err := url.QueryUnescape(key)
		if err != nil {
			return nil, errors.New(op).Msg("Invalid URL encoding in response")
		}
		decodedValue, err := url.QueryUnescape(value)
		if err != nil {
			return nil, errors.New(op).Msg("Invalid URL encoding in response")
		}

		params[decodedKey] = decodedValue
	}

	return params, nil
}

// parseDataParams splits the DATA sub-envelope of a STATUS response. The
// values inside DATA are not URL-encoded a second time.
func parseDataParams(data string) map[string]string {
	params := make(map[string]string)

	for _, pair := range strings.Split(data, "&") {
		if key, value, found := strings.Cut(pair, "="); found {
			params[key] = value
		}
	}

	return params
}

func (s *Service) parseInsertResponse(body string) (InsertResponse, error) {
	const op errors.Op = "qrz.Service.parseInsertResponse"

	params, err := parseResponseParams(op, body)
	if err != nil {
		return InsertResponse{}, err
	}

	switch params["RESULT"] {
	case "OK":
		logidStr, ok := params["LOGID"]
		if !ok {
			return InsertResponse{}, errors.New(op).Msg("Missing LOGID in response")
		}
		logid, err := strconv.ParseUint(logidStr, 10, 64)
		if err != nil {
			return InsertResponse{}, errors.New(op).Msg("Invalid LOGID format")
		}

		count := 1
		if countStr, ok := params["COUNT"]; ok {
			if count, err = strconv.Atoi(countStr); err != nil {
				return InsertResponse{}, errors.New(op).Msg("Invalid COUNT format")
			}
		}

		return InsertResponse{Logid: logid, Count: count}, nil
	case "FAIL":
		return InsertResponse{}, failError(op, params)
	case "AUTH":
		return InsertResponse{}, authError(op)
	default:
		return InsertResponse{}, errors.New(op).Msg("Unexpected response format")
	}
}

func (s *Service) parseDeleteResponse(body string) (DeleteResponse, error) {
	const op errors.Op = "qrz.Service.parseDeleteResponse"

	params, err := parseResponseParams(op, body)
	if err != nil {
		return DeleteResponse{}, err
	}

	switch params["RESULT"] {
	case "OK", "PARTIAL":
		count := 0
		if countStr, ok := params["COUNT"]; ok {
			if count, err = strconv.Atoi(countStr); err != nil {
				return DeleteResponse{}, errors.New(op).Msg("Invalid COUNT format")
			}
		}

		return DeleteResponse{
			DeletedCount:   count,
			NotFoundLogids: splitLogids(params["LOGIDS"]),
		}, nil
	case "FAIL":
		return DeleteResponse{}, failError(op, params)
	case "AUTH":
		return DeleteResponse{}, authError(op)
	default:
		return DeleteResponse{}, errors.New(op).Msg("Unexpected response format")
	}
}

func (s *Service) parseStatusResponse(body string) (StatusResponse, error) {
	const op errors.Op = "qrz.Service.parseStatusResponse"

	params, err := parseResponseParams(op, body)
	if err != nil {
		return StatusResponse{}, err
	}

	switch params["RESULT"] {
	case "OK":
		data := make(map[string]string)
		if dataStr, ok := params["DATA"]; ok {
			data = parseDataParams(dataStr)
		}
		return StatusResponse{Data: data}, nil
	case "FAIL":
		return StatusResponse{}, failError(op, params)
	case "AUTH":
		return StatusResponse{}, authError(op)
	default:
		return StatusResponse{}, errors.New(op).Msg("Unexpected response format")
	}
}

func (s *Service) parseFetchResponse(body string) (FetchResponse, error) {
	const op errors.Op = "qrz.Service.parseFetchResponse"

	params, err := parseResponseParams(op, body)
	if err != nil {
		return FetchResponse{}, err
	}

	switch params["RESULT"] {
	case "OK":
		count := 0
		if countStr, ok := params["COUNT"]; ok {
			if count, err = strconv.Atoi(countStr); err != nil {
				return FetchResponse{}, errors.New(op).Msg("Invalid COUNT format")
			}
		}

		var qsos []adif.QsoRecord
		if adifStr, ok := params["ADIF"]; ok {
			if qsos, err = adif.Decode(adifStr); err != nil {
				return FetchResponse{}, err
			}
		}

		return FetchResponse{
			Count:  count,
			Logids: splitLogids(params["LOGIDS"]),
			Qsos:   qsos,
		}, nil
	case "FAIL":
		return FetchResponse{}, failError(op, params)
	case "AUTH":
		return FetchResponse{}, authError(op)
	default:
		return FetchResponse{}, errors.New(op).Msg("Unexpected response format")
	}
}

// failError surfaces the REASON of a RESULT=FAIL response.
func failError(op errors.Op, params map[string]string) error {
	reason := strings.TrimSpace(params["REASON"])
	if reason == "" {
		reason = "Unknown error"
	}
	return errors.New(op).Msg(reason)
}

func authError(op errors.Op) error {
	return errors.New(op).Err(ErrAuth).Msg("Authentication failed or insufficient privileges")
}

func joinLogids(logids []uint64) string {
	parts := make([]string, len(logids))
	for i, logid := range logids {
		parts[i] = strconv.FormatUint(logid, 10)
	}
	return strings.Join(parts, ",")
}

// splitLogids parses a comma-separated logid list, skipping malformed
// entries the way the API's own clients do.
func splitLogids(value string) []uint64 {
	if value == "" {
		return nil
	}

	var logids []uint64
	for _, part := range strings.Split(value, ",") {
		if logid, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64); err == nil {
			logids = append(logids, logid)
		}
	}
	return logids
}

func (s *Service) validateConfig(op errors.Op) error {
	if s.Config == nil {
		return errors.New(op).Msg("service config is not set")
	}

	s.Config.URL = strings.TrimSpace(s.Config.URL)
	if s.Config.URL == "" {
		return errors.New(op).Msg("logbook service URL cannot be empty")
	}

	u, err := url.Parse(s.Config.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New(op).Err(err).Msg("logbook service URL is invalid")
	}

	s.Config.UserAgent = strings.TrimSpace(s.Config.UserAgent)
	if s.Config.UserAgent == "" || len(s.Config.UserAgent) > 128 {
		return errors.New(op).Err(ErrInvalidUserAgent).Msg("user agent must be non-empty and 128 characters or less")
	}
	lowerAgent := strings.ToLower(s.Config.UserAgent)
	if lowerAgent == "curl" || lowerAgent == "wget" {
		return errors.New(op).Err(ErrInvalidUserAgent).Msgf("user agent %q is not identifiable", s.Config.UserAgent)
	}
	for _, generic := range genericAgentSubstrings {
		if strings.Contains(lowerAgent, generic) {
			return errors.New(op).Err(ErrInvalidUserAgent).Msgf("user agent %q is not identifiable", s.Config.UserAgent)
		}
	}

	// The logbook access key travels in the Password field of the shared
	// lookup config.
	s.Config.Password = strings.TrimSpace(s.Config.Password)
	if len(s.Config.Password) < 10 {
		return errors.New(op).Err(ErrInvalidKey).Msg("logbook access key is missing or too short")
	}

	if s.Config.HttpTimeoutSec <= 0 {
		return errors.New(op).Msg("logbook service timeout must be greater than zero")
	}

	return nil
}
