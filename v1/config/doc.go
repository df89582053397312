// Package config loads the service configuration with koanf.
//
// An optional YAML file, named by TAGSEARCH_CONFIG, is read first. Environment
// variables override it; the first underscore separates the section from the
// field:
//
//	QDRANT_HOST=qdrant              -> qdrant.host
//	EMBEDDING_CACHE_TTL=30m         -> embedding.cache_ttl
//	KAFKA_BROKERS=k1:9092,k2:9092   -> kafka.brokers
//	KAFKA_SASL_MECHANISM=PLAIN      -> kafka.sasl.mechanism
//
// FXModule provides every package Config to the fx graph.
package config
