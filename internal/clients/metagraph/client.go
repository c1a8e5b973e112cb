package metagraph

import (
	"adcraft-server/internal/observability"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://graph.facebook.com"
	DefaultVersion = "v21.0"
	DefaultTimeout = 30 * time.Second

	maxResponseSize = 10 * 1024 * 1024
)

type Config struct {
	AppID       string
	AppSecret   string
	RedirectURI string
	BaseURL     string
	Version     string
	Timeout     time.Duration
}

type Client struct {
	cfg        Config
	logger     *observability.Logger
	httpClient *http.Client
}

func NewClient(cfg Config, logger *observability.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:        cfg,
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ExchangeCode trades an OAuth authorization code for a short-lived user token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (TokenResponse, error) {
	params := url.Values{}
	params.Set("client_id", c.cfg.AppID)
	params.Set("client_secret", c.cfg.AppSecret)
	params.Set("redirect_uri", c.cfg.RedirectURI)
	params.Set("code", code)

	var token TokenResponse
	if err := c.do(ctx, http.MethodGet, "oauth/access_token", "", params, &token); err != nil {
		return TokenResponse{}, err
	}
	return token, nil
}

// ExchangeLongLivedToken upgrades a short-lived user token to a long-lived one.
func (c *Client) ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (TokenResponse, error) {
	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", c.cfg.AppID)
	params.Set("client_secret", c.cfg.AppSecret)
	params.Set("fb_exchange_token", shortLivedToken)

	var token TokenResponse
	if err := c.do(ctx, http.MethodGet, "oauth/access_token", "", params, &token); err != nil {
		return TokenResponse{}, err
	}
	return token, nil
}

func (c *Client) GetMe(ctx context.Context, token string) (User, error) {
	params := url.Values{}
	params.Set("fields", "id,name")

	var user User
	if err := c.do(ctx, http.MethodGet, "me", token, params, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (c *Client) GetAdAccount(ctx context.Context, token, adAccountID string) (AdAccount, error) {
	params := url.Values{}
	params.Set("fields", "id,name,account_status,currency,funding_source_details")

	var account AdAccount
	if err := c.do(ctx, http.MethodGet, NormalizeAdAccountID(adAccountID), token, params, &account); err != nil {
		return AdAccount{}, err
	}
	return account, nil
}

// CreateAdCreative creates a link-ad creative and returns its id.
func (c *Client) CreateAdCreative(ctx context.Context, token string, p CreateAdCreativeParams) (string, error) {
	linkData := map[string]interface{}{
		"link":    p.Link,
		"message": p.Message,
	}
	if p.Headline != "" {
		linkData["name"] = p.Headline
	}
	if p.Description != "" {
		linkData["description"] = p.Description
	}
	if p.ImageHash != "" {
		linkData["image_hash"] = p.ImageHash
	} else if p.ImageURL != "" {
		linkData["picture"] = p.ImageURL
	}
	if p.CallToAction != "" {
		linkData["call_to_action"] = map[string]interface{}{
			"type":  p.CallToAction,
			"value": map[string]string{"link": p.Link},
		}
	}

	storySpec := map[string]interface{}{
		"page_id":   p.PageID,
		"link_data": linkData,
	}
	if p.InstagramActorID != "" {
		storySpec["instagram_actor_id"] = p.InstagramActorID
	}

	spec, err := json.Marshal(storySpec)
	if err != nil {
		return "", fmt.Errorf("failed to encode object story spec: %w", err)
	}

	params := url.Values{}
	params.Set("name", p.Name)
	params.Set("object_story_spec", string(spec))

	var res idResponse
	if err := c.do(ctx, http.MethodPost, NormalizeAdAccountID(p.AdAccountID)+"/adcreatives", token, params, &res); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", missingIDError("ad creative")
	}
	return res.ID, nil
}

// CreateAd creates the ad under an ad set and returns its id.
func (c *Client) CreateAd(ctx context.Context, token string, p CreateAdParams) (string, error) {
	status := p.Status
	if status == "" {
		status = StatusPaused
	}

	creative, err := json.Marshal(map[string]string{"creative_id": p.CreativeID})
	if err != nil {
		return "", fmt.Errorf("failed to encode creative reference: %w", err)
	}

	params := url.Values{}
	params.Set("name", p.Name)
	params.Set("adset_id", p.AdSetID)
	params.Set("creative", string(creative))
	params.Set("status", status)

	var res idResponse
	if err := c.do(ctx, http.MethodPost, NormalizeAdAccountID(p.AdAccountID)+"/ads", token, params, &res); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", missingIDError("ad")
	}
	return res.ID, nil
}

// UpdateAdStatus sets the configured status (ACTIVE, PAUSED) of an ad.
func (c *Client) UpdateAdStatus(ctx context.Context, token, adID, status string) error {
	params := url.Values{}
	params.Set("status", status)

	var res successResponse
	if err := c.do(ctx, http.MethodPost, adID, token, params, &res); err != nil {
		return err
	}
	if !res.Success {
		return &GraphError{HTTPStatus: http.StatusOK, Message: "status update was not acknowledged", Malformed: true}
	}
	return nil
}

// GetAd returns the ad's configured and effective status plus review feedback.
func (c *Client) GetAd(ctx context.Context, token, adID string) (Ad, error) {
	params := url.Values{}
	params.Set("fields", "id,name,status,effective_status,ad_review_feedback")

	var ad Ad
	if err := c.do(ctx, http.MethodGet, adID, token, params, &ad); err != nil {
		return Ad{}, err
	}
	return ad, nil
}

// GetAdInsights returns delivery metrics for the date preset (e.g. "lifetime", "last_7d").
func (c *Client) GetAdInsights(ctx context.Context, token, adID, datePreset string) (Insights, error) {
	if datePreset == "" {
		datePreset = "lifetime"
	}
	params := url.Values{}
	params.Set("fields", "impressions,reach,clicks,spend,ctr,cpc")
	params.Set("date_preset", datePreset)

	var res struct {
		Data []Insights `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, adID+"/insights", token, params, &res); err != nil {
		return Insights{}, err
	}
	if len(res.Data) == 0 {
		return Insights{}, nil
	}
	return res.Data[0], nil
}

// NormalizeAdAccountID adds the act_ prefix Graph expects on ad account nodes.
func NormalizeAdAccountID(id string) string {
	if id == "" || strings.HasPrefix(id, "act_") {
		return id
	}
	return "act_" + id
}

func (c *Client) appSecretProof(token string) string {
	mac := hmac.New(sha256.New, []byte(c.cfg.AppSecret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// do issues one Graph call. Every failure comes back as *GraphError.
func (c *Client) do(ctx context.Context, method, path, token string, params url.Values, out interface{}) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "graph_method", Value: method},
		observability.Field{Key: "graph_path", Value: path},
	)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if params == nil {
		params = url.Values{}
	}
	if token != "" && c.cfg.AppSecret != "" {
		params.Set("appsecret_proof", c.appSecretProof(token))
	}

	endpoint := fmt.Sprintf("%s/%s/%s", c.cfg.BaseURL, c.cfg.Version, strings.TrimLeft(path, "/"))

	var body io.Reader
	if method == http.MethodGet {
		endpoint += "?" + params.Encode()
	} else {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		c.logger.Error(ctx, "failed to create graph request", err)
		return &GraphError{Message: fmt.Sprintf("failed to create request: %v", err), cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		gerr := transportError(err)
		c.logger.Error(ctx, "graph request failed", gerr)
		return gerr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		gerr := transportError(err)
		gerr.HTTPStatus = resp.StatusCode
		c.logger.Error(ctx, "failed to read graph response", gerr)
		return gerr
	}

	if gerr := parseError(resp.StatusCode, raw); gerr != nil {
		c.logger.Warn(ctx, "graph returned an error",
			observability.Field{Key: "http_status", Value: gerr.HTTPStatus},
			observability.Field{Key: "graph_code", Value: gerr.Code},
			observability.Field{Key: "graph_subcode", Value: gerr.Subcode},
			observability.Field{Key: "fbtrace_id", Value: gerr.FBTraceID},
			observability.Field{Key: "graph_message", Value: gerr.Message},
		)
		return gerr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Error(ctx, "failed to decode graph response", err)
		return &GraphError{
			HTTPStatus: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected response body: %s", truncate(string(raw), 512)),
			Malformed:  resp.StatusCode >= 200 && resp.StatusCode < 300,
			cause:      err,
		}
	}
	return nil
}

type errorEnvelope struct {
	Error *struct {
		Message        string `json:"message"`
		Type           string `json:"type"`
		Code           int    `json:"code"`
		ErrorSubcode   int    `json:"error_subcode"`
		ErrorUserTitle string `json:"error_user_title"`
		ErrorUserMsg   string `json:"error_user_msg"`
		FBTraceID      string `json:"fbtrace_id"`
	} `json:"error"`
}

// parseError returns nil for successful responses. Graph sometimes embeds an
// error envelope in a 200, and error responses may lack a JSON body entirely.
func parseError(status int, raw []byte) *GraphError {
	var env errorEnvelope
	decodeErr := json.Unmarshal(raw, &env)

	if decodeErr == nil && env.Error != nil {
		msg := env.Error.Message
		if msg == "" {
			msg = fallbackMessage(status, raw)
		}
		return &GraphError{
			HTTPStatus:  status,
			Code:        env.Error.Code,
			Subcode:     env.Error.ErrorSubcode,
			Type:        env.Error.Type,
			Message:     msg,
			UserTitle:   env.Error.ErrorUserTitle,
			UserMessage: env.Error.ErrorUserMsg,
			FBTraceID:   env.Error.FBTraceID,
		}
	}

	if status >= 200 && status < 300 {
		return nil
	}

	return &GraphError{
		HTTPStatus: status,
		Message:    fallbackMessage(status, raw),
	}
}

func fallbackMessage(status int, raw []byte) string {
	if text := strings.TrimSpace(string(raw)); text != "" {
		return truncate(text, 1024)
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
