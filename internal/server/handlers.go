package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/ananya/fraudlens/backend/internal/detect"
	"github.com/ananya/fraudlens/backend/internal/domain"
	"github.com/ananya/fraudlens/backend/internal/repository"
	"github.com/ananya/fraudlens/backend/internal/stats"
)

// APIHandlers bundles the detection endpoints exposed by the backend API.
type APIHandlers struct {
	communities *detect.CommunityDetector
	repairShops *detect.SharedResourceDetector
	providers   *detect.SharedResourceDetector
	witnesses   *detect.RecurringWitnessDetector
	sweeper     *detect.Sweeper
	scorer      *detect.PropensityScorer
	stats       *stats.Aggregator
	repo        *repository.Repository
	logger      *slog.Logger
}

// NewAPIHandlers constructs the handler set from the detection services.
func NewAPIHandlers(
	communities *detect.CommunityDetector,
	repairShops, providers *detect.SharedResourceDetector,
	witnesses *detect.RecurringWitnessDetector,
	scorer *detect.PropensityScorer,
	aggregator *stats.Aggregator,
	repo *repository.Repository,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		communities: communities,
		repairShops: repairShops,
		providers:   providers,
		witnesses:   witnesses,
		sweeper: &detect.Sweeper{
			Communities: communities,
			RepairShops: repairShops,
			Providers:   providers,
			Witnesses:   witnesses,
		},
		scorer: scorer,
		stats:  aggregator,
		repo:   repo,
		logger: logger,
	}
}

type communityView struct {
	CommunityID int      `json:"communityId"`
	Size        int      `json:"size"`
	ClaimantIDs []string `json:"claimantIds"`
}

func (h *APIHandlers) handleCommunities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	membership, err := h.communities.Detect(r.Context())
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}

	grouped := make(map[int][]string)
	for claimantID, community := range membership {
		grouped[community] = append(grouped[community], claimantID)
	}

	views := make([]communityView, 0, len(grouped))
	for id, members := range grouped {
		sort.Strings(members)
		views = append(views, communityView{CommunityID: id, Size: len(members), ClaimantIDs: members})
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].Size != views[j].Size {
			return views[i].Size > views[j].Size
		}
		return views[i].CommunityID < views[j].CommunityID
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"communityCount": len(views),
		"claimantCount":  len(membership),
		"communities":    views,
	})
}

func (h *APIHandlers) handleRepairShops(w http.ResponseWriter, r *http.Request) {
	h.servePattern(w, r, h.repairShops.Defaults(), h.repairShops.Detect, string(domain.PatternSharedRepairShop))
}

func (h *APIHandlers) handleMedicalProviders(w http.ResponseWriter, r *http.Request) {
	h.servePattern(w, r, h.providers.Defaults(), h.providers.Detect, string(domain.PatternSharedMedicalProvider))
}

func (h *APIHandlers) handleWitnesses(w http.ResponseWriter, r *http.Request) {
	h.servePattern(w, r, h.witnesses.Defaults(), h.witnesses.Detect, string(domain.PatternRecurringWitness))
}

func (h *APIHandlers) servePattern(
	w http.ResponseWriter,
	r *http.Request,
	defaults detect.Thresholds,
	run func(ctx context.Context, t detect.Thresholds) ([]domain.CandidateCluster, error),
	pattern string,
) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	thresholds, err := overrideThresholds(defaults, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	clusters, err := run(r.Context(), thresholds)
	if err != nil {
		if errors.Is(err, detect.ErrInvalidThreshold) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondFailure(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"pattern":  pattern,
		"count":    len(clusters),
		"clusters": clusters,
	})
}

// overrideThresholds overlays query-string overrides on the configured
// defaults. Values must parse as integers; range validation happens in the
// detector so config and query errors surface the same way.
func overrideThresholds(defaults detect.Thresholds, r *http.Request) (detect.Thresholds, error) {
	t := defaults
	q := r.URL.Query()
	for name, dst := range map[string]*int{
		"min_claims":      &t.MinClaims,
		"min_connections": &t.MinConnections,
		"top_n":           &t.TopN,
	} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return detect.Thresholds{}, errors.New("invalid " + name + ": " + raw)
		}
		*dst = v
	}
	return t, nil
}

func (h *APIHandlers) handlePatterns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	result, err := h.sweeper.Run(r.Context())
	if err != nil {
		if errors.Is(err, detect.ErrInvalidThreshold) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleClaims dispatches /claims/{id}/score.
func (h *APIHandlers) handleClaims(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/claims/")
	claimID, action, found := strings.Cut(rest, "/")
	if !found || action != "score" || claimID == "" {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	result, err := h.scorer.ScoreClaim(r.Context(), claimID)
	if err != nil {
		if errors.Is(err, domain.ErrClaimNotFound) {
			respondError(w, http.StatusNotFound, "claim not found: "+claimID)
			return
		}
		h.respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *APIHandlers) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	overview, err := h.stats.Overview(r.Context())
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// handleClaimants dispatches /claimants/{id}/subgraph.
func (h *APIHandlers) handleClaimants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/claimants/")
	claimantID, action, found := strings.Cut(rest, "/")
	if !found || action != "subgraph" || claimantID == "" {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	subgraph, err := h.repo.ClaimantSubgraph(r.Context(), claimantID)
	if err != nil {
		h.respondFailure(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, subgraph)
}

func (h *APIHandlers) respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "path", r.URL.Path, "error", err)
	respondError(w, http.StatusInternalServerError, "internal error")
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
