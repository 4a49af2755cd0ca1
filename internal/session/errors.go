package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	gh "github.com/google/go-github/v68/github"

	gherrors "github.com/quillhq/ghops/internal/errors"
)

// wrapAPIError converts a GitHub API response error to our error taxonomy.
// It checks go-github typed errors first for accurate rate-limit detection,
// then falls back to status code mapping. GitHub API error messages are
// preserved in the returned error for better diagnostics.
func wrapAPIError(resp *gh.Response, err error) error {
	if err == nil {
		return nil
	}

	// Operator cancellation and a released credential guard propagate
	// untranslated; neither is a transport failure worth retrying
	if errors.Is(err, context.Canceled) || errors.Is(err, gherrors.ErrCredentialReleased) {
		return err
	}

	// Check go-github typed errors first (most reliable for rate limiting)
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		retryAfter := time.Until(rateLimitErr.Rate.Reset.Time)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return gherrors.NewRateLimitError(retryAfter, rateLimitErr.Message)
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		var retryAfter time.Duration
		if abuseErr.RetryAfter != nil {
			retryAfter = *abuseErr.RetryAfter
		}
		return gherrors.NewRateLimitError(retryAfter, abuseErr.Message)
	}

	// Extract message from GitHub ErrorResponse if available
	apiMessage := ""
	var ghErr *gh.ErrorResponse
	isAPIErr := errors.As(err, &ghErr)
	if isAPIErr {
		apiMessage = ghErr.Message
	}

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}

	// No HTTP response and no API-level error means the transport failed
	if statusCode == 0 && !isAPIErr {
		return gherrors.NewNetworkError("", err)
	}

	switch statusCode {
	case http.StatusUnauthorized:
		if apiMessage != "" {
			return fmt.Errorf("%w: %s", gherrors.ErrUnauthorized, apiMessage)
		}
		return gherrors.ErrUnauthorized
	case http.StatusForbidden:
		// 403 without a typed rate-limit error is a permission denial
		if apiMessage != "" {
			return fmt.Errorf("%w: %s", gherrors.ErrForbidden, apiMessage)
		}
		return gherrors.ErrForbidden
	case http.StatusTooManyRequests:
		return gherrors.NewRateLimitError(retryAfterFromResponse(resp), apiMessage)
	case http.StatusNotFound:
		if apiMessage != "" {
			return fmt.Errorf("%w: %s", gherrors.ErrNotFound, apiMessage)
		}
		return gherrors.ErrNotFound
	default:
		msg := "API request failed"
		if apiMessage != "" {
			msg = apiMessage
		}
		return gherrors.NewAPIError(statusCode, msg, err)
	}
}

// retryAfterFromResponse parses the Retry-After header (delay in seconds or
// an HTTP date) from a throttled response
func retryAfterFromResponse(resp *gh.Response) time.Duration {
	if resp == nil || resp.Response == nil {
		return 0
	}
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
