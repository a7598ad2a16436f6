package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one invocation of the tool across all its records.
	FieldRunID = "run_id"
	// FieldVideo is the key for the video filename a record refers to.
	FieldVideo = "video"
	// FieldEpisodeKey is the key for the resolved episode key.
	FieldEpisodeKey = "episode_key"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)
