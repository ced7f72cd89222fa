package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"domain-recovery/internal/config"
	"domain-recovery/internal/domain"
)

// WhoisService queries a JSON WHOIS API
type WhoisService struct {
	APIURL  string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewWhoisService creates a new WHOIS service
func NewWhoisService(cfg config.WhoisConfig, logger *slog.Logger) *WhoisService {
	return &WhoisService{
		APIURL:  cfg.APIURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		logger:  logger,
	}
}

// whoisResponse is the API envelope: {code, msg, data}
type whoisResponse struct {
	Code int            `json:"code"`
	Msg  string         `json:"msg"`
	Data map[string]any `json:"data"`
}

// Lookup returns the registration signals for d. A domain the API reports as
// unregistered yields empty signals and no error.
func (s *WhoisService) Lookup(ctx context.Context, d string) (*domain.RegistrationSignals, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("whois rate limit: %w", err)
	}

	apiURL, err := url.Parse(s.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	params := url.Values{}
	params.Add("domain", d)
	apiURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query WHOIS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &domain.RegistrationSignals{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("WHOIS API returned status %d", resp.StatusCode)
	}

	var apiResponse whoisResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("failed to parse WHOIS response: %w", err)
	}
	if apiResponse.Code != 0 {
		if notRegistered(apiResponse.Msg) {
			return &domain.RegistrationSignals{}, nil
		}
		return nil, fmt.Errorf("WHOIS API error: %s", apiResponse.Msg)
	}
	if len(apiResponse.Data) == 0 {
		return &domain.RegistrationSignals{}, nil
	}
	return s.parse(d, apiResponse.Data), nil
}

func notRegistered(msg string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range []string{"not registered", "no match", "not found"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// parse maps the API payload onto RegistrationSignals. Unparseable dates are logged and
// left absent.
func (s *WhoisService) parse(d string, data map[string]any) *domain.RegistrationSignals {
	sig := &domain.RegistrationSignals{
		Registrar:      stringField(data, "registrar"),
		RegistrarURL:   stringField(data, "registrarURL"),
		RegistrarEmail: stringField(data, "registrarAbuseEmail"),
		RegistrarPhone: stringField(data, "registrarAbusePhone"),
	}

	for key, dst := range map[string]**time.Time{
		"creationDate":   &sig.CreatedAt,
		"updatedDate":    &sig.UpdatedAt,
		"expirationDate": &sig.ExpiresAt,
	} {
		raw := stringField(data, key)
		if raw == "" {
			continue
		}
		t, err := domain.ParseDate(raw)
		if err != nil {
			s.logger.Warn("discarding unparseable WHOIS date",
				slog.String("domain", d), slog.String("field", key), slog.Any("err", err))
			continue
		}
		*dst = &t
	}

	// status is either a list of strings or a list of {text} objects
	if list, ok := data["status"].([]any); ok {
		for _, item := range list {
			switch v := item.(type) {
			case string:
				sig.Statuses = append(sig.Statuses, v)
			case map[string]any:
				if text, ok := v["text"].(string); ok {
					sig.Statuses = append(sig.Statuses, text)
				}
			}
		}
	}

	if list, ok := data["nameServers"].([]any); ok {
		for _, ns := range list {
			if nsStr, ok := ns.(string); ok {
				sig.NameServers = append(sig.NameServers, nsStr)
			}
		}
	}

	switch v := data["registrant"].(type) {
	case string:
		sig.RegistrantPresent = strings.TrimSpace(v) != ""
		sig.RegistrantRedacted = isRedacted(v)
	case map[string]any:
		for _, field := range []string{"name", "organization", "email"} {
			if val := stringField(v, field); val != "" {
				sig.RegistrantPresent = true
				if isRedacted(val) {
					sig.RegistrantRedacted = true
				}
			}
		}
	}
	return sig
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func isRedacted(v string) bool {
	v = strings.ToLower(v)
	return strings.Contains(v, "redacted") || strings.Contains(v, "privacy") || strings.Contains(v, "withheld")
}
