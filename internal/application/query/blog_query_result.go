package query

import "bloglist-service/internal/application/common"

type BlogQueryResult struct {
	Result *common.BlogResult `json:"result"`
}

type BlogQueryListResult struct {
	Result []*common.BlogResult `json:"result"`
}

// BlogStatsQueryResult carries the list aggregates. Favorite is nil for an
// empty blog list.
type BlogStatsQueryResult struct {
	Count      int                `json:"count"`
	Dummy      int                `json:"dummy"`
	TotalLikes int                `json:"totalLikes"`
	Favorite   *common.BlogResult `json:"favorite"`
}
