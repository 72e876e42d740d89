/*
Package observability turns Lotka lifecycle hooks into operational signals.

Metrics counts navigation transitions with Prometheus counters; LoggingHooks
writes them to a structured logger. Both return domain.LifecycleHooks and can be
chained with Chain.

These are process-level counters for operators. Nothing here records who read
what.
*/
package observability
