package api

import (
	"alcyxob/gym-app/internal/history"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

// HistoryService is the subset of *history.Service the handler needs.
type HistoryService interface {
	BuildFullHistory(ctx context.Context, memberID primitive.ObjectID, opts history.Options) (*history.Dossier, error)
	BuildHistoryInRange(ctx context.Context, memberID primitive.ObjectID, start, end time.Time, opts history.Options) (*history.Dossier, error)
	BuildLastMonth(ctx context.Context, memberID primitive.ObjectID, opts history.Options) (*history.Dossier, error)
	BuildLastThreeMonths(ctx context.Context, memberID primitive.ObjectID, opts history.Options) (*history.Dossier, error)
	BuildCurrentYear(ctx context.Context, memberID primitive.ObjectID, opts history.Options) (*history.Dossier, error)
}

// HistoryHandler serves member history dossiers.
type HistoryHandler struct {
	historyService HistoryService
}

func NewHistoryHandler(historyService HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// GetFullHistory godoc
// @Summary Full member history
// @Description Consolidates enrollments, workout plans, assessments, attendance and payments of a member.
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Param strict query bool false "Fail instead of returning a partial dossier"
// @Success 200 {object} history.Dossier
// @Failure 404 {object} gin.H "HISTORICO_NOT_FOUND"
// @Failure 429 {object} gin.H "Rate limited"
// @Failure 500 {object} gin.H "ERRO_AGREGACAO"
// @Router /members/{memberId}/history [get]
func (h *HistoryHandler) GetFullHistory(c *gin.Context) {
	h.serve(c, func(ctx context.Context, memberID primitive.ObjectID, opts history.Options) (*history.Dossier, error) {
		return h.historyService.BuildFullHistory(ctx, memberID, opts)
	})
}

// GetHistoryInRange godoc
// @Summary Member history for a date range
// @Description Both dates are inclusive calendar days. With toDate=true an end date in the future is clamped to today.
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Param toDate query bool false "Clamp a future end date to today"
// @Param strict query bool false "Fail instead of returning a partial dossier"
// @Success 200 {object} history.Dossier
// @Failure 400 {object} gin.H "PERIODO_INVALIDO"
// @Failure 404 {object} gin.H "HISTORICO_NOT_FOUND or SEM_DADOS_PERIODO"
// @Failure 500 {object} gin.H "ERRO_AGREGACAO"
// @Router /members/{memberId}/history/range [get]
func (h *HistoryHandler) GetHistoryInRange(c *gin.Context) {
	start, err := time.Parse(dateLayout, c.Query("start"))
	if err != nil {
		abortWithCode(c, http.StatusBadRequest, string(history.KindInvalidPeriod), "start must be a date in YYYY-MM-DD format")
		return
	}
	end, err := time.Parse(dateLayout, c.Query("end"))
	if err != nil {
		abortWithCode(c, http.StatusBadRequest, string(history.KindInvalidPeriod), "end must be a date in YYYY-MM-DD format")
		return
	}
	// An inverted range is rejected whatever the member id looks like.
	if start.After(end) {
		abortWithCode(c, http.StatusBadRequest, string(history.KindInvalidPeriod), "start must not be after end")
		return
	}

	h.serve(c, func(ctx context.Context, memberID primitive.ObjectID, opts history.Options) (*history.Dossier, error) {
		return h.historyService.BuildHistoryInRange(ctx, memberID, start, end, opts)
	})
}

// GetLastMonth godoc
// @Summary Member history for the last 30 days
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Success 200 {object} history.Dossier
// @Router /members/{memberId}/history/last-month [get]
func (h *HistoryHandler) GetLastMonth(c *gin.Context) {
	h.serve(c, h.historyService.BuildLastMonth)
}

// GetLastThreeMonths godoc
// @Summary Member history for the last three months
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Success 200 {object} history.Dossier
// @Router /members/{memberId}/history/last-3-months [get]
func (h *HistoryHandler) GetLastThreeMonths(c *gin.Context) {
	h.serve(c, h.historyService.BuildLastThreeMonths)
}

// GetCurrentYear godoc
// @Summary Member history since January 1st
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Success 200 {object} history.Dossier
// @Router /members/{memberId}/history/current-year [get]
func (h *HistoryHandler) GetCurrentYear(c *gin.Context) {
	h.serve(c, h.historyService.BuildCurrentYear)
}

type buildFunc func(ctx context.Context, memberID primitive.ObjectID, opts history.Options) (*history.Dossier, error)

func (h *HistoryHandler) serve(c *gin.Context, build buildFunc) {
	// A malformed id can never name a member.
	memberID, err := primitive.ObjectIDFromHex(c.Param("memberId"))
	if err != nil {
		abortWithCode(c, http.StatusNotFound, string(history.KindHistoryNotFound), "member not found")
		return
	}

	opts, err := historyOptions(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	dossier, err := build(c.Request.Context(), memberID, opts)
	if err != nil {
		abortWithHistoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, dossier)
}

func historyOptions(c *gin.Context) (history.Options, error) {
	var opts history.Options
	var err error
	if raw := c.Query("strict"); raw != "" {
		if opts.Strict, err = strconv.ParseBool(raw); err != nil {
			return opts, errBadFlag("strict")
		}
	}
	if raw := c.Query("toDate"); raw != "" {
		if opts.ToDate, err = strconv.ParseBool(raw); err != nil {
			return opts, errBadFlag("toDate")
		}
	}
	return opts, nil
}

type errBadFlag string

func (e errBadFlag) Error() string { return string(e) + " must be true or false" }

func abortWithHistoryError(c *gin.Context, err error) {
	kind := history.KindOf(err)
	switch kind {
	case history.KindHistoryNotFound, history.KindNoDataInPeriod:
		abortWithCode(c, http.StatusNotFound, string(kind), err.Error())
	case history.KindInvalidPeriod:
		abortWithCode(c, http.StatusBadRequest, string(kind), err.Error())
	default:
		_ = c.Error(err)
		if kind == "" {
			kind = history.KindAggregation
		}
		abortWithCode(c, http.StatusInternalServerError, string(kind), "could not build member history")
	}
}
