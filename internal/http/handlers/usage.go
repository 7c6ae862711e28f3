package handlers

import (
	"log"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"reviewpulse/internal/config"
	dbpkg "reviewpulse/internal/db"
	"reviewpulse/internal/quota"
)

// UsageHandler reports the caller's current quota standing without
// consuming any of it.
func UsageHandler(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ip, fp := clientIdentity(ctx)

		usage, err := dbpkg.GetOrCreateUsage(db, ip, fp)
		if err != nil {
			log.Printf("usage lookup failed for %s: %v", ip, err)
			jsonResponse(ctx, fasthttp.StatusInternalServerError, errorResponse{
				Error: "Unable to load usage status. Please try again.",
			})
			return
		}

		jsonResponse(ctx, fasthttp.StatusOK, quota.Evaluate(usage, cfg.MaxUsage))
	}
}
