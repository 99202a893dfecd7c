// Package inspect provides the live tree-introspection surface for the
// Loom hook runtime.
//
// A Registry observes owner lifecycles and keeps a view of every live
// owner's hook slots (each slot exposes a human-readable label such as
// "useEffectEvent"). Server exposes that view over HTTP:
//
//	GET /snapshot   JSON tree of live owners and their slots
//	GET /live       WebSocket stream pushing a snapshot after every rebuild
//	GET /metrics    Prometheus metrics
//
// Wire it in at mount time:
//
//	reg := inspect.NewRegistry()
//	mtr := inspect.NewMetrics()
//	owner := loom.NewOwner(nil, loom.WithObserver(inspect.Tee(reg, mtr)))
//
//	srv := inspect.NewServer(reg, inspect.WithMetricsHandler(promhttp.Handler()))
//	go srv.ListenAndServe(":6061")
//
// Everything here is informational only: nothing behavioral may be
// derived from labels or snapshots.
package inspect
