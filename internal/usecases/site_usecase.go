package usecases

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"memeforge.backend/internal/config"
	"memeforge.backend/pkg/logger"
	"memeforge.backend/pkg/metrics"
)

// RenderedSite is a cached site render
type RenderedSite struct {
	Body        []byte
	ContentType string
	Cached      bool
}

// SiteUseCase serves published sites from the render origin through a
// Redis page cache.
type SiteUseCase struct {
	projects   *ProjectUseCase
	redis      *redis.Client
	httpClient *http.Client
	cfg        config.RenderConfig
}

// NewSiteUseCase creates a new site render use case
func NewSiteUseCase(projects *ProjectUseCase, redisClient *redis.Client, cfg config.RenderConfig) *SiteUseCase {
	return &SiteUseCase{
		projects:   projects,
		redis:      redisClient,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cfg:        cfg,
	}
}

func siteCacheKey(subdomain string) string {
	return "site:render:" + subdomain
}

// Render returns the rendered page for a published subdomain. The
// origin is only hit on cache miss.
func (uc *SiteUseCase) Render(ctx context.Context, subdomain string) (*RenderedSite, error) {
	project, err := uc.projects.GetPublishedBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}

	if uc.redis != nil {
		if cached, err := uc.redis.Get(ctx, siteCacheKey(project.Subdomain)).Bytes(); err == nil {
			metrics.SiteCacheTotal.WithLabelValues("hit").Inc()
			return &RenderedSite{Body: cached, ContentType: "text/html; charset=utf-8", Cached: true}, nil
		}
	}
	metrics.SiteCacheTotal.WithLabelValues("miss").Inc()

	site, err := uc.fetchOrigin(ctx, project.Subdomain)
	if err != nil {
		logger.WithContext(ctx).Error("origin render failed",
			zap.String("subdomain", project.Subdomain),
			zap.Error(err))
		return nil, err
	}

	if uc.redis != nil {
		uc.redis.Set(ctx, siteCacheKey(project.Subdomain), site.Body, uc.cfg.CacheTTL)
	}
	return site, nil
}

// Invalidate drops the cached render for a subdomain
func (uc *SiteUseCase) Invalidate(ctx context.Context, subdomain string) {
	if uc.redis != nil {
		uc.redis.Del(ctx, siteCacheKey(subdomain))
	}
}

func (uc *SiteUseCase) fetchOrigin(ctx context.Context, subdomain string) (*RenderedSite, error) {
	url := fmt.Sprintf("%s/render/%s", uc.cfg.OriginURL, subdomain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build origin request: %w", err)
	}

	resp, err := uc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch origin: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("origin returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read origin response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/html; charset=utf-8"
	}
	return &RenderedSite{Body: body, ContentType: contentType}, nil
}
