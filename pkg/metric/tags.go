package metric

// Metric names
const (
	ApiRequestCount   = "api_request_count"
	ApiRequestLatency = "api_request_latency"

	SimilarityMapHitCount = "similarity_map_hit_count"
	AnnFallbackCount      = "ann_fallback_count"
	EmptyResolveCount     = "empty_resolve_count"

	RecCacheHitCount  = "rec_cache_hit_count"
	RecCacheMissCount = "rec_cache_miss_count"
)

// Tag keys
const (
	TagEnv            = "env"
	TagService        = "service"
	TagPath           = "path"
	TagMethod         = "method"
	TagHttpStatusCode = "http_status_code"
	TagArtifact       = "artifact"
)

type Tag struct {
	Key   string
	Value string
}

func NewTag(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

func TagAsString(key, value string) string {
	return key + ":" + value
}

// BuildTag converts tags to the statsd "key:value" form
func BuildTag(tags ...Tag) []string {
	built := make([]string, 0, len(tags))
	for _, tag := range tags {
		built = append(built, TagAsString(tag.Key, tag.Value))
	}
	return built
}
