package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/omaralfarsi/fleetledger-backend/api/responses"
	"github.com/omaralfarsi/fleetledger-backend/api/validators"
	"github.com/omaralfarsi/fleetledger-backend/internal/analytics"
	"github.com/omaralfarsi/fleetledger-backend/pkg/logger"
)

var timeNowUTC = func() time.Time { return time.Now().UTC() }

// resolveDateRange reads start_date/end_date from the query. Missing,
// partial or malformed values fall back to the trailing default window
// rather than failing the request.
func resolveDateRange(r *http.Request, now time.Time) (time.Time, time.Time) {
	fallbackStart := now.AddDate(0, 0, -analytics.DefaultWindowDays)

	rawStart := strings.TrimSpace(r.URL.Query().Get("start_date"))
	rawEnd := strings.TrimSpace(r.URL.Query().Get("end_date"))
	if rawStart == "" || rawEnd == "" {
		return fallbackStart, now
	}

	start, err := time.Parse(time.RFC3339, rawStart)
	if err != nil {
		return fallbackStart, now
	}
	end, err := time.Parse(time.RFC3339, rawEnd)
	if err != nil {
		return fallbackStart, now
	}
	return start.UTC(), end.UTC()
}

func parseDays(r *http.Request) (int, error) {
	return validators.ParseQueryInt(r, "days", analytics.DefaultWindowDays, 1, 3650)
}

func TruckPerformance(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "truckId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		days, err := parseDays(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		perf, err := svc.TruckPerformance(r.Context(), id, days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, perf)
	}
}

func DriverPerformance(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "driverId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		days, err := parseDays(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		perf, err := svc.DriverPerformance(r.Context(), id, days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, perf)
	}
}

func FleetEfficiency(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := parseDays(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.FleetEfficiency(r.Context(), days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func ExpenseAnalysis(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, err := parseDays(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.ExpenseAnalysis(r.Context(), days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func TruckProfit(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "truckId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		start, end := resolveDateRange(r, timeNowUTC())
		report, err := svc.TruckProfit(r.Context(), id, start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func FleetSummary(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end := resolveDateRange(r, timeNowUTC())
		report, err := svc.FleetSummary(r.Context(), start, end)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func Dashboard(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
