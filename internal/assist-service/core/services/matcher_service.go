package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"road-assist/internal/assist-service/core/domain/dto"
	"road-assist/internal/assist-service/core/domain/model"
	"road-assist/internal/assist-service/core/ports"
	"road-assist/internal/geo"
	"road-assist/internal/mylogger"
)

const matchCacheTTL = 60 * time.Second

type MatcherService struct {
	ctx          context.Context
	mylog        mylogger.Logger
	providerRepo ports.IProviderRepo
	cache        ports.IMatchCache
}

// NewMatcherService builds the matcher. cache may be nil; matching then
// always reads the directory directly.
func NewMatcherService(ctx context.Context,
	log mylogger.Logger,
	providerRepo ports.IProviderRepo,
	cache ports.IMatchCache,
) ports.IMatcherService {
	return &MatcherService{
		ctx:          ctx,
		mylog:        log,
		providerRepo: providerRepo,
		cache:        cache,
	}
}

func (ms *MatcherService) FindProviders(lat, lon float64, serviceType string) (dto.MatchResponseDto, error) {
	log := ms.mylog.Action("FindProviders")

	key := matchCacheKey(lat, lon, serviceType)
	if ms.cache != nil {
		if raw, ok := ms.cache.Get(ms.ctx, key); ok {
			res := dto.MatchResponseDto{}
			if err := json.Unmarshal(raw, &res); err == nil {
				return res, nil
			}
			log.Warn("dropping undecodable cache entry", "key", key)
		}
	}

	ctx, cancel := context.WithTimeout(ms.ctx, time.Second*5)
	defer cancel()

	providers, err := ms.providerRepo.FindMatchable(ctx)
	if err != nil {
		log.Error("cannot read matchable providers", err)
		return dto.MatchResponseDto{}, err
	}

	matches := rankProviders(providers, lat, lon, serviceType)

	res := dto.MatchResponseDto{
		Providers: make([]dto.MatchedProviderDto, 0, len(matches)),
		Count:     len(matches),
	}
	for _, m := range matches {
		res.Providers = append(res.Providers, dto.MatchedProviderDto{
			ProviderId:   m.Provider.ID,
			Name:         m.Provider.Name,
			DistanceKm:   m.DistanceKm,
			ServiceTypes: m.Provider.ServiceTypes,
			Latitude:     *m.Provider.Latitude,
			Longitude:    *m.Provider.Longitude,
		})
	}

	if ms.cache != nil {
		if raw, err := json.Marshal(res); err == nil {
			ms.cache.Set(ms.ctx, key, raw, matchCacheTTL)
		}
	}

	log.Debug("ranked providers", "count", res.Count)
	return res, nil
}

// rankProviders filters and orders candidates around a query point.
// Each provider is cut against its own coverage radius at full float
// precision; rounding to two decimals happens only on the way out.
func rankProviders(providers []model.Provider, lat, lon float64, serviceType string) []model.ProviderMatch {
	type candidate struct {
		provider model.Provider
		distance float64
	}

	candidates := make([]candidate, 0, len(providers))
	for _, p := range providers {
		if !p.Matchable() {
			continue
		}
		if serviceType != "" && !p.ServiceTypes.Contains(serviceType) {
			continue
		}
		radius := p.CoverageRadiusKm
		if radius <= 0 {
			radius = model.DefaultCoverageRadiusKm
		}
		d := geo.Distance(lat, lon, *p.Latitude, *p.Longitude)
		if d > radius {
			continue
		}
		candidates = append(candidates, candidate{provider: p, distance: d})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].provider.ID < candidates[j].provider.ID
	})

	matches := make([]model.ProviderMatch, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, model.ProviderMatch{
			Provider:   c.provider,
			DistanceKm: round2(c.distance),
		})
	}
	return matches
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// matchCacheKey rounds coordinates to ~11m so nearby repeat queries hit.
func matchCacheKey(lat, lon float64, serviceType string) string {
	return fmt.Sprintf("match:%.4f:%.4f:%s", lat, lon, serviceType)
}
