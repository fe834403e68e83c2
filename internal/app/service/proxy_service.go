package service

import (
	"context"
	"net/url"
	"strings"

	"polydash/internal/app/port"
	"polydash/internal/domain/entity"
	"polydash/internal/infrastructure/configloader"
)

const (
	defaultProxyEndpoint = "events"
	defaultProxyLimit    = "100"
	proxyEndpointParam   = "endpoint"
)

var proxyEndpoints = map[string]struct{}{
	"events":  {},
	"markets": {},
	"tags":    {},
	"series":  {},
}

// proxyServiceImpl implements port.ProxyService
type proxyServiceImpl struct {
	gamma  port.GammaClient
	cfg    *configloader.Config
	logger port.Logger
}

// NewProxyService creates a new instance of proxyServiceImpl.
func NewProxyService(gamma port.GammaClient, cfg *configloader.Config, l port.Logger) port.ProxyService {
	return &proxyServiceImpl{gamma: gamma, cfg: cfg, logger: l}
}

// Forward implements port.ProxyService. The query is passed through without the endpoint
// selector; event listings default to open events, 100 per page.
func (s *proxyServiceImpl) Forward(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	endpoint = strings.Trim(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		endpoint = defaultProxyEndpoint
	}
	if _, ok := proxyEndpoints[endpoint]; !ok {
		return nil, entity.BadRequest("Unsupported endpoint: " + endpoint)
	}

	forwarded := url.Values{}
	for k, v := range query {
		if k != proxyEndpointParam {
			forwarded[k] = append([]string(nil), v...)
		}
	}
	if endpoint == defaultProxyEndpoint {
		if forwarded.Get("closed") == "" {
			forwarded.Set("closed", "false")
		}
		if forwarded.Get("limit") == "" {
			forwarded.Set("limit", defaultProxyLimit)
		}
	}

	ctx, cancel := withTimeout(ctx, s.cfg.Upstream.RequestTimeoutMillis)
	defer cancel()

	body, err := s.gamma.Raw(ctx, endpoint, forwarded)
	if err != nil {
		s.logger.Error("Proxy request failed", "endpoint", endpoint, "error", err)
		return nil, entity.UpstreamFailure("Failed to fetch from Polymarket", err)
	}
	return body, nil
}
