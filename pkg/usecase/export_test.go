package usecase

// Export unexported functions for testing
var (
	CreateOrUpdateBigQueryTableForTest = createOrUpdateBigQueryTable
	ParseSentimentScoreForTest         = parseSentimentScore
	BuildMetricsForTest                = buildMetrics
)
