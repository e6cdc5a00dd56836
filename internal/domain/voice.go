package domain

// StagedAudio is an uploaded audio payload persisted to the scratch
// directory. It is owned by the pipeline run that received it and must be
// removed before the request ends.
type StagedAudio struct {
	Path         string
	OriginalName string
	MimeType     string
	Size         int64
}

// Transcript is the text produced by the speech-to-text adapter.
type Transcript struct {
	Text string `json:"text"`
}

// IntentKind tags the classified purpose of a spoken input.
type IntentKind string

const (
	IntentWeatherQuery IntentKind = "weather_query"
	IntentFunctionCall IntentKind = "function_call"
	IntentGeneralChat  IntentKind = "general_chat"
)

// Intent is the result of classifying a transcript. Location is set for
// weather queries; Function and Parameters for function calls.
type Intent struct {
	Kind       IntentKind             `json:"kind"`
	Location   string                 `json:"location,omitempty"`
	Function   string                 `json:"function,omitempty"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
}

// WeatherReading is a current-conditions observation from the weather provider.
type WeatherReading struct {
	Location     string  `json:"location"`
	TemperatureC float64 `json:"temperature"`
	Condition    string  `json:"condition"`
}

// ActionResult carries the spoken response text plus any structured payload
// the dispatched action produced.
type ActionResult struct {
	ResponseText string                 `json:"response_text"`
	Payload      map[string]interface{} `json:"payload,omitempty"`
}

// SynthesizedAudio is the output of the text-to-speech adapter.
type SynthesizedAudio struct {
	Bytes    []byte
	MimeType string
}
