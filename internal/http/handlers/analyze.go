package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"reviewpulse/internal/config"
	dbpkg "reviewpulse/internal/db"
	"reviewpulse/internal/quota"
	"reviewpulse/internal/sentiment"
)

type analyzeResponse struct {
	Sentiment   string       `json:"sentiment"`
	Confidence  float64      `json:"confidence"`
	Analysis    string       `json:"analysis"`
	UsageStatus quota.Status `json:"usage_status"`
}

type errorResponse struct {
	Error       string        `json:"error"`
	UsageStatus *quota.Status `json:"usage_status,omitempty"`
}

// AnalyzeHandler runs one review through the quota gate and the
// sentiment pipeline. Classifier failures never surface here (the
// pipeline absorbs them); only persistence failures produce a 500,
// with a generic body and the detail logged server-side.
func AnalyzeHandler(db *gorm.DB, cfg *config.Config, analyzer *sentiment.Analyzer) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ip, fp := clientIdentity(ctx)

		usage, err := dbpkg.GetOrCreateUsage(db, ip, fp)
		if err != nil {
			log.Printf("usage lookup failed for %s: %v", ip, err)
			jsonResponse(ctx, fasthttp.StatusInternalServerError, errorResponse{
				Error: "An error occurred during analysis. Please try again.",
			})
			return
		}

		status := quota.Evaluate(usage, cfg.MaxUsage)
		if !status.Allowed {
			observeQuotaDenied()
			jsonResponse(ctx, fasthttp.StatusForbidden, errorResponse{
				Error:       "You have reached your analysis limit. Maximum " + strconv.Itoa(cfg.MaxUsage) + " analyses per device/IP address.",
				UsageStatus: &status,
			})
			return
		}

		// FormValue covers query args, urlencoded bodies and multipart
		// forms; the browser UI submits FormData, which is multipart.
		review := string(ctx.FormValue("review"))
		if strings.TrimSpace(review) == "" {
			jsonResponse(ctx, fasthttp.StatusBadRequest, errorResponse{
				Error: "Please enter a movie review to analyze",
			})
			return
		}

		start := time.Now()
		result := analyzer.Resolve(ctx, review)
		observeAnalysis(result.Sentiment, result.Method, time.Since(start))

		if _, err := dbpkg.IncrementUsage(db, usage, cfg.MaxUsage); err != nil {
			// A concurrent request may have consumed the last slot
			// between the gate check and the increment.
			if errors.Is(err, dbpkg.ErrQuotaExceeded) {
				observeQuotaDenied()
				status = quota.Evaluate(usage, cfg.MaxUsage)
				jsonResponse(ctx, fasthttp.StatusForbidden, errorResponse{
					Error:       "You have reached your analysis limit. Maximum " + strconv.Itoa(cfg.MaxUsage) + " analyses per device/IP address.",
					UsageStatus: &status,
				})
				return
			}
			log.Printf("usage increment failed for %s: %v", ip, err)
			jsonResponse(ctx, fasthttp.StatusInternalServerError, errorResponse{
				Error:       "An error occurred during analysis. Please try again.",
				UsageStatus: &status,
			})
			return
		}

		status = quota.Evaluate(usage, cfg.MaxUsage)
		jsonResponse(ctx, fasthttp.StatusOK, analyzeResponse{
			Sentiment:   result.Sentiment,
			Confidence:  result.Confidence,
			Analysis:    result.Analysis,
			UsageStatus: status,
		})
	}
}
