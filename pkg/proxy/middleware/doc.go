// Package middleware contains the HTTP middleware chain used by the relay
// server: panic recovery, request IDs, request logging and CORS.
//
// Chain applies middleware so that the first one listed runs outermost:
//
//	handler = middleware.Chain(mux,
//	    middleware.Recovery,
//	    middleware.RequestID,
//	    middleware.Logging,
//	    middleware.CORS(cfg.Server.CORS),
//	)
package middleware
