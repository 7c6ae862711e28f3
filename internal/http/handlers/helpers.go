package handlers

import (
	"encoding/json"

	"github.com/valyala/fasthttp"

	"reviewpulse/internal/fingerprint"
	httpctx "reviewpulse/internal/http/ctx"
)

func jsonResponse(ctx *fasthttp.RequestCtx, code int, data any) {
	ctx.SetStatusCode(code)
	ctx.SetContentType("application/json")
	body, _ := json.Marshal(data)
	ctx.SetBody(body)
}

// clientIdentity returns the (ip, fingerprint) pair for this request.
// Normally both were resolved by the ClientIdentity middleware; if the
// handler is reached without it, they are derived here so every path
// sees the same identity for the same headers.
func clientIdentity(ctx *fasthttp.RequestCtx) (string, string) {
	ip, okIP := httpctx.ClientIPFromCtx(ctx)
	fp, okFP := httpctx.FingerprintFromCtx(ctx)
	if okIP && okFP {
		return ip, fp
	}

	forwarded := string(ctx.Request.Header.Peek("X-Forwarded-For"))
	ip = fingerprint.ClientIP(forwarded, ctx.RemoteIP().String())
	fp = fingerprint.FromHeaders(
		string(ctx.Request.Header.Peek("User-Agent")),
		string(ctx.Request.Header.Peek("Accept-Language")),
	)
	return ip, fp
}
