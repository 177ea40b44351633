package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

func (c *Client) analyze(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, errors.New("analysis request is required")
	}

	requestID := uuid.NewString()
	logger := c.logger.With(zap.String("request_id", requestID))

	logger.Debug("make request",
		zap.String("url", c.Endpoint+analyzePath),
		zap.Int("files", len(req.Files)),
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader(requestIDHeader, requestID).
		SetBody(req).
		Post(analyzePath)
	if err != nil {
		return nil, &TransportError{Op: "post " + analyzePath, Err: err}
	}

	body := resp.Body()
	logger.Debug("got response from analysis service",
		zap.String("status", resp.Status()),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", resp.Time()),
	)

	return parseAnalyzeResponse(resp.StatusCode(), body)
}

// parseAnalyzeResponse interprets the body the way the web client does: the
// HTTP status is not consulted, only the success flag.
func parseAnalyzeResponse(status int, body []byte) (*Result, error) {
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return nil, &TransportError{
			Op:  "decode response",
			Err: fmt.Errorf("body is not a json object (status %d)", status),
		}
	}

	if !gjson.GetBytes(body, "success").Bool() {
		return nil, &ServiceError{
			Status:  status,
			Message: gjson.GetBytes(body, "error").String(),
		}
	}

	if err := validateResponse(body); err != nil {
		return nil, &TransportError{Op: "validate response", Err: err}
	}

	var result Result
	if err := decodeResult(gjson.ParseBytes(body).Value(), &result); err != nil {
		return nil, &TransportError{Op: "decode response", Err: err}
	}

	return &result, nil
}

// decodeResult maps the generic json value onto Result. Weak typing lets
// numeric candidate ids land in the string ID field.
func decodeResult(raw any, target *Result) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(raw)
}

func (c *Client) health(ctx context.Context) (*Health, error) {
	c.logger.Debug("make request", zap.String("url", c.Endpoint+healthPath))

	resp, err := c.http.R().
		SetContext(ctx).
		Get(healthPath)
	if err != nil {
		return nil, &TransportError{Op: "get " + healthPath, Err: err}
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status())
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil, &TransportError{Op: "decode health", Err: errors.New("body is not valid json")}
	}

	return &Health{
		Status:  gjson.GetBytes(body, "status").String(),
		Message: gjson.GetBytes(body, "message").String(),
	}, nil
}
