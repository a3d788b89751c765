// Package health provides liveness, readiness and version endpoints.
//
// Liveness only reports that the process is up. Readiness runs registered
// component checks concurrently, each bounded by a timeout, and answers 503
// when any of them fails. The relay registers a gateway configuration check
// and a session store check.
//
// # Usage
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("gateway", gw.Ready)
//	mux.HandleFunc("/live", checker.LivenessHandler())
//	mux.HandleFunc("/ready", checker.ReadinessHandler())
//	mux.HandleFunc("/version", health.VersionHandler(version, commit, buildTime))
package health
