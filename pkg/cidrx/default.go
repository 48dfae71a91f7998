package cidrx

const (
	// worker bound for target-file ingestion
	DefaultWorkerThreads = 25

	// parsed-spec cache; repeated targets in large input files are common
	DefaultParseCacheSize = 1024

	// sizing of the streaming dedupe filter used by -unique
	DefaultDedupeCapacity      = 1 << 20
	DefaultDedupeFalsePositive = 0.0001

	// specs wider than this prefix trigger a size warning before expansion
	DefaultMinPrefix = 8
)
