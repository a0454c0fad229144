package cli

var (
	ParseAnswers   = parseAnswers
	ParseGCSPath   = parseGCSPath
	RendererFor    = rendererFor
	GetIndexConfig = getIndexConfig
)
