package handler

import (
	"net/http"

	"github.com/yatra-app/yatra/internal/domain"
	"github.com/yatra-app/yatra/internal/social"
)

// defaultFeedLimit is the page size of the latest feed.
const defaultFeedLimit = 20

type feedResponse struct {
	Sort       social.SortOrder `json:"sort"`
	Trips      []SocialTrip     `json:"trips"`
	Pagination Pagination       `json:"pagination"`
}

// GetFeed handles GET /api/feed.
// Supports ?sort=latest|top, ?page= and ?limit= (latest: limit 20 by
// default; top: the first 10 unless limit says otherwise; max 100).
func (s *Server) GetFeed(w http.ResponseWriter, r *http.Request) {
	order := social.ParseSort(r.URL.Query().Get("sort"))
	defaultLimit := defaultFeedLimit
	if order == social.SortTop {
		defaultLimit = social.DefaultTopN
	}
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"), defaultLimit)

	page, err := s.feed.Feed(r.Context(), order, params)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	trips := make([]SocialTrip, len(page.Items))
	for i, t := range page.Items {
		trips[i] = SocialTrip{
			Trip:          tripToResponse(t.Trip),
			UserName:      t.UserName,
			LikesCount:    t.LikesCount,
			CommentsCount: t.CommentsCount,
		}
	}
	writeJSON(w, http.StatusOK, feedResponse{
		Sort:       order,
		Trips:      trips,
		Pagination: Pagination{Page: page.Page, Limit: page.Limit, Total: page.Total},
	})
}
