package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrCaptchaFailed = errors.New("captcha verification failed")

var (
	turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	captchaClient      = &http.Client{Timeout: 10 * time.Second}
)

type turnstileResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// VerifyCaptcha checks a Turnstile token submitted with a public form. A rejected token
// returns an error wrapping ErrCaptchaFailed; transport problems are returned as is.
func VerifyCaptcha(ctx context.Context, token, secretKey, ip string) error {
	if token == "" {
		return fmt.Errorf("%w: missing token", ErrCaptchaFailed)
	}
	if secretKey == "" {
		return fmt.Errorf("captcha secret key is not configured")
	}

	form := url.Values{
		"secret":   {secretKey},
		"response": {token},
		"remoteip": {ip},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, turnstileVerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := captchaClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to verify captcha: %w", err)
	}
	defer resp.Body.Close()

	var result turnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode captcha response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("%w: %v", ErrCaptchaFailed, result.ErrorCodes)
	}
	return nil
}
