package middleware

import (
	"github.com/valyala/fasthttp"

	"reviewpulse/internal/fingerprint"
	httpctx "reviewpulse/internal/http/ctx"
)

// ClientIdentity resolves the caller's IP and device fingerprint from
// request headers and stashes them on the request context so handlers
// share one consistent identity per request. Headers are weak signals
// (freely spoofable); the identity is only used for quota bucketing.
func ClientIdentity(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		forwarded := string(ctx.Request.Header.Peek("X-Forwarded-For"))
		ip := fingerprint.ClientIP(forwarded, ctx.RemoteIP().String())

		userAgent := string(ctx.Request.Header.Peek("User-Agent"))
		acceptLanguage := string(ctx.Request.Header.Peek("Accept-Language"))
		fp := fingerprint.FromHeaders(userAgent, acceptLanguage)

		httpctx.SetClientIP(ctx, ip)
		httpctx.SetFingerprint(ctx, fp)
		next(ctx)
	}
}
