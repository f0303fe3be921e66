package request

import (
	"net/url"
	"strings"

	"github.com/yumyai/hitview/pkg/model"
	"github.com/yumyai/hitview/pkg/pipeline"
)

// ParseHitQuery turns the hit list query string into a pipeline query:
//
//	sort=e|orfs|length|depth|coverage|weight
//	filter_otus=true  filter_sequences=true
//	find=<free text>  search_ids=<id,id,...>  active=<id>
//
// An unknown sort keeps retrieval order.
func ParseHitQuery(values url.Values) (pipeline.Query, error) {
	var (
		q   pipeline.Query
		err error
	)

	if q.FilterOTUs, err = parseFlag(values, "filter_otus"); err != nil {
		return q, err
	}
	if q.FilterSequences, err = parseFlag(values, "filter_sequences"); err != nil {
		return q, err
	}

	q.SortKey = model.ParseSortKey(values.Get("sort"))
	q.Find = values.Get("find")
	q.SearchIDs = parseIDList(values, "search_ids")
	q.ActiveID = model.ID(strings.TrimSpace(values.Get("active")))

	return q, nil
}
