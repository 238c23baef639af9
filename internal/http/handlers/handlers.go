package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sentiment_dashboard/backend/internal/service"
)

type Handler struct {
	Service *service.Service
	Logger  zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Service.Repo.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Regional sentiment scores
// @Tags sentiment
// @Produce json
// @Success 200 {array} models.RegionalSentiment
// @Router /api/regional-sentiment [get]
func (h *Handler) RegionalSentimentList(c *gin.Context) {
	items, err := h.Service.RegionalSentiment(c.Request.Context())
	if err != nil {
		h.storageError(c, "Failed to list regional sentiment", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Create or update a region's sentiment score
// @Tags sentiment
// @Accept json
// @Produce json
// @Param body body service.RegionalSentimentInput true "Region score"
// @Success 200 {object} models.RegionalSentiment
// @Failure 400 {object} map[string]any
// @Router /api/regional-sentiment [put]
func (h *Handler) RegionalSentimentUpsert(c *gin.Context) {
	var req service.RegionalSentimentInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Service.UpsertRegionalSentiment(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, "Failed to save regional sentiment", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary Recent feedback, newest first
// @Tags feedback
// @Produce json
// @Param limit query int false "Max rows (default 10)"
// @Success 200 {array} models.Feedback
// @Router /api/feedback [get]
func (h *Handler) FeedbackList(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	items, err := h.Service.RecentFeedback(c.Request.Context(), limit)
	if err != nil {
		h.storageError(c, "Failed to list feedback", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Submit feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param body body service.FeedbackInput true "Feedback"
// @Success 201 {object} models.Feedback
// @Failure 400 {object} map[string]any
// @Router /api/feedback [post]
func (h *Handler) FeedbackCreate(c *gin.Context) {
	var req service.FeedbackInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Service.CreateFeedback(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, "Failed to create feedback", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) SentimentTrendsList(c *gin.Context) {
	items, err := h.Service.SentimentTrends(c.Request.Context())
	if err != nil {
		h.storageError(c, "Failed to list sentiment trends", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Priority items
// @Tags priorities
// @Produce json
// @Param sort query string false "rank | impact | effort"
// @Success 200 {array} models.PriorityItem
// @Failure 400 {object} map[string]any
// @Router /api/priority-items [get]
func (h *Handler) PriorityItemsList(c *gin.Context) {
	items, err := h.Service.PriorityItems(c.Request.Context(), c.Query("sort"))
	if err != nil {
		h.writeServiceError(c, "Failed to list priority items", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Impact vs effort matrix
// @Tags priorities
// @Produce json
// @Success 200 {object} service.Matrix
// @Router /api/priority-items/matrix [get]
func (h *Handler) PriorityMatrix(c *gin.Context) {
	matrix, err := h.Service.Matrix(c.Request.Context())
	if err != nil {
		h.storageError(c, "Failed to build priority matrix", err)
		return
	}
	c.JSON(http.StatusOK, matrix)
}

// @Summary Create a priority item
// @Tags priorities
// @Accept json
// @Produce json
// @Param body body service.PriorityItemInput true "Priority item"
// @Success 201 {object} models.PriorityItem
// @Failure 400 {object} map[string]any
// @Router /api/priority-items [post]
func (h *Handler) PriorityItemCreate(c *gin.Context) {
	var req service.PriorityItemInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Service.CreatePriorityItem(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, "Failed to create priority item", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// @Summary AI insights, newest first
// @Tags insights
// @Produce json
// @Param limit query int false "Max rows"
// @Success 200 {array} models.AIInsight
// @Router /api/ai-insights [get]
func (h *Handler) InsightsList(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	items, err := h.Service.Insights(c.Request.Context(), limit)
	if err != nil {
		h.storageError(c, "Failed to list insights", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Create an insight manually
// @Tags insights
// @Accept json
// @Produce json
// @Param body body service.AIInsightInput true "Insight"
// @Success 201 {object} models.AIInsight
// @Failure 400 {object} map[string]any
// @Router /api/ai-insights [post]
func (h *Handler) InsightCreate(c *gin.Context) {
	var req service.AIInsightInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Service.CreateAIInsight(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, "Failed to create insight", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// @Summary Generate insights from current data
// @Tags insights
// @Produce json
// @Success 201 {array} models.AIInsight
// @Router /api/ai-insights/generate [post]
func (h *Handler) InsightsGenerate(c *gin.Context) {
	items, err := h.Service.GenerateInsights(c.Request.Context())
	if err != nil {
		h.Logger.Error().Err(err).Int("stored", len(items)).Msg("insight generation failed")
		writeError(c, http.StatusInternalServerError, "GENERATION_ERROR", "Insight generation failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, items)
}

func (h *Handler) ImpactMetricsList(c *gin.Context) {
	items, err := h.Service.ImpactMetrics(c.Request.Context())
	if err != nil {
		h.storageError(c, "Failed to list impact metrics", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) UsageMetricsList(c *gin.Context) {
	items, err := h.Service.UsageMetrics(c.Request.Context())
	if err != nil {
		h.storageError(c, "Failed to list usage metrics", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Feedback channels
// @Tags channels
// @Produce json
// @Success 200 {array} ChannelView
// @Router /api/channels [get]
func (h *Handler) ChannelsList(c *gin.Context) {
	items, err := h.Service.Channels(c.Request.Context())
	if err != nil {
		h.storageError(c, "Failed to list channels", err)
		return
	}
	out := make([]ChannelView, 0, len(items))
	for _, ch := range items {
		out = append(out, newChannelView(ch))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Register a channel
// @Tags channels
// @Accept json
// @Produce json
// @Param body body service.ChannelInput true "Channel"
// @Success 201 {object} ChannelView
// @Failure 400 {object} map[string]any
// @Router /api/channels [post]
func (h *Handler) ChannelCreate(c *gin.Context) {
	var req service.ChannelInput
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.Service.CreateChannel(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, "Failed to create channel", err)
		return
	}
	c.JSON(http.StatusCreated, newChannelView(item))
}

// @Summary Dashboard KPI summary
// @Tags dashboard
// @Produce json
// @Success 200 {object} service.Summary
// @Router /api/dashboard/summary [get]
func (h *Handler) DashboardSummary(c *gin.Context) {
	summary, err := h.Service.Summary(c.Request.Context())
	if err != nil {
		h.storageError(c, "Failed to build summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) writeServiceError(c *gin.Context, message string, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Reason, ve)
		return
	}
	h.storageError(c, message, err)
}

func (h *Handler) storageError(c *gin.Context, message string, err error) {
	h.Logger.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	writeError(c, http.StatusInternalServerError, "DB_ERROR", message, err.Error())
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return false
	}
	return true
}

func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a non-negative integer", nil)
		return 0, false
	}
	return limit, true
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
