package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"duit/internal/core"
)

// summaryQuery is the parsed ?period=&date=&kind= triple shared by the
// summary and chart endpoints.
type summaryQuery struct {
	period core.Period
	ref    time.Time
	kind   core.KindFilter
}

func (q summaryQuery) key() string {
	return string(q.period) + "|" + q.ref.Format(core.DateKey) + "|" + string(q.kind)
}

func parseSummaryQuery(r *http.Request) (summaryQuery, error) {
	var q summaryQuery

	period, err := core.ParsePeriod(strings.TrimSpace(r.URL.Query().Get("period")))
	if err != nil {
		return q, err
	}
	q.period = period

	q.ref = time.Now()
	if v := strings.TrimSpace(r.URL.Query().Get("date")); v != "" {
		ref, err := parseDate(v)
		if err != nil {
			return q, err
		}
		q.ref = ref
	}

	kind, err := core.ParseKindFilter(strings.TrimSpace(r.URL.Query().Get("kind")))
	if err != nil {
		return q, err
	}
	q.kind = kind

	return q, nil
}

// summaryView decorates the snapshot summary with display strings rendered
// for the configured locale and currency.
type summaryView struct {
	Summary          core.FinanceSummary `json:"summary"`
	Transactions     []core.Transaction  `json:"transactions"`
	Categories       []core.Category     `json:"categories"`
	FormattedIncome  string              `json:"formattedIncome"`
	FormattedExpense string              `json:"formattedExpense"`
	FormattedBalance string              `json:"formattedBalance"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	q, err := parseSummaryQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	snapshot, found := s.snapshotCache.Get(q.key())
	if !found {
		snapshot, err = s.finance.ComputeSnapshot(r.Context(), q.period, q.ref, q.kind)
		if err != nil {
			respondError(w, r, err)
			return
		}
		s.snapshotCache.Set(q.key(), snapshot)
	}

	view := summaryView{
		Summary:      snapshot.Summary,
		Transactions: snapshot.Transactions,
		Categories:   snapshot.Categories,
	}
	if s.formatter != nil {
		view.FormattedIncome = s.formatter.Currency(snapshot.Summary.TotalIncome)
		view.FormattedExpense = s.formatter.Currency(snapshot.Summary.TotalExpense)
		view.FormattedBalance = s.formatter.Currency(snapshot.Summary.Balance)
	}

	respondData(w, http.StatusOK, view)
}

func (s *Server) handleChartCategories(w http.ResponseWriter, r *http.Request) {
	q, err := parseSummaryQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	limit := 5
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondMessage(w, http.StatusUnprocessableEntity, "limit must be a positive integer")
			return
		}
		limit = n
	}

	key := q.key() + "|" + strconv.Itoa(limit)
	top, found := s.chartCache.Get(key)
	if !found {
		top, err = s.finance.TopExpenses(r.Context(), q.period, q.ref, limit)
		if err != nil {
			respondError(w, r, err)
			return
		}
		s.chartCache.Set(key, top)
	}

	respondData(w, http.StatusOK, top)
}

func (s *Server) handleChartDaily(w http.ResponseWriter, r *http.Request) {
	q, err := parseSummaryQuery(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	groups, found := s.dailyCache.Get(q.key())
	if !found {
		groups, err = s.finance.DailyGroups(r.Context(), q.period, q.ref)
		if err != nil {
			respondError(w, r, err)
			return
		}
		s.dailyCache.Set(q.key(), groups)
	}

	respondData(w, http.StatusOK, groups)
}
