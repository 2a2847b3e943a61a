// Package services contains the core orchestration logic: ingesting a
// repository into a retrieval index, answering questions against it,
// and the session that ties the two together. Services depend on ports
// only; adapters are injected at wiring time.
package services
