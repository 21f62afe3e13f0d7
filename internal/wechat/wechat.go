package wechat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Credentials is the provider's answer to a code exchange. It contains
// identity facts only, no decisions.
type Credentials struct {
	OpenID     string `json:"openid"`
	SessionKey string `json:"session_key"`
	UnionID    string `json:"unionid"`
	ErrCode    int    `json:"errcode"`
	ErrMsg     string `json:"errmsg"`
}

// Exchanger exchanges a mini-program login code for provider
// credentials. Implementations must not create users or sessions.
type Exchanger interface {
	Code2Session(ctx context.Context, code string) (*Credentials, error)
}

type Client struct {
	appID      string
	appSecret  string
	baseURL    string
	httpClient *http.Client
}

func New(appID, appSecret, baseURL string) (*Client, error) {
	if appID == "" || appSecret == "" {
		return nil, errors.New("wechat config missing required fields")
	}
	if baseURL == "" {
		baseURL = "https://api.weixin.qq.com"
	}

	return &Client{
		appID:     appID,
		appSecret: appSecret,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Code2Session calls the jscode2session endpoint. The provider signals
// failure inside a 200 body via errcode, so the status code alone is
// not trusted.
func (c *Client) Code2Session(ctx context.Context, code string) (*Credentials, error) {
	q := url.Values{}
	q.Set("appid", c.appID)
	q.Set("secret", c.appSecret)
	q.Set("js_code", code)
	q.Set("grant_type", "authorization_code")

	endpoint := c.baseURL + "/sns/jscode2session?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("wechat: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wechat: code exchange failed: %w", err)
	}
	defer resp.Body.Close()

	var creds Credentials
	if err := json.NewDecoder(resp.Body).Decode(&creds); err != nil {
		return nil, fmt.Errorf("wechat: failed to decode response: %w", err)
	}

	if creds.ErrCode != 0 {
		return nil, fmt.Errorf("wechat: api error: %s (%d)", creds.ErrMsg, creds.ErrCode)
	}

	if creds.OpenID == "" {
		return nil, errors.New("wechat: response missing openid")
	}

	return &creds, nil
}
