package handlers

import (
	"bytes"
	"log"

	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	"reviewpulse/internal/config"
	dbpkg "reviewpulse/internal/db"
	"reviewpulse/internal/quota"
	ui "reviewpulse/web"
)

type indexData struct {
	UsageAllowed   bool
	UsageRemaining int
	UsageMax       int
}

// IndexHandler renders the review form with the caller's current quota
// standing baked into the page. A storage failure degrades to a fully
// allowed view rather than blocking the page; /analyze still enforces
// the quota for real.
func IndexHandler(db *gorm.DB, cfg *config.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		data := indexData{
			UsageAllowed:   true,
			UsageRemaining: cfg.MaxUsage,
			UsageMax:       cfg.MaxUsage,
		}

		ip, fp := clientIdentity(ctx)
		if usage, err := dbpkg.GetOrCreateUsage(db, ip, fp); err != nil {
			log.Printf("usage lookup failed for %s: %v", ip, err)
		} else {
			status := quota.Evaluate(usage, cfg.MaxUsage)
			data.UsageAllowed = status.Allowed
			data.UsageRemaining = status.Remaining
		}

		var buf bytes.Buffer
		if err := ui.Templates().ExecuteTemplate(&buf, "index.html", data); err != nil {
			log.Printf("render index failed: %v", err)
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetBodyString("internal error")
			return
		}

		ctx.SetContentType("text/html; charset=utf-8")
		ctx.SetBody(buf.Bytes())
	}
}
