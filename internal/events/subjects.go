package events

const (
	SubjectSubnetImported = "sherpa.subnet.imported"
	SubjectSubnetExported = "sherpa.subnet.exported"

	StreamName   = "SHERPA_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectFrameworkSaved(name string) string   { return "sherpa.framework." + name + ".saved" }
func SubjectFrameworkDeleted(name string) string { return "sherpa.framework." + name + ".deleted" }
func SubjectCompassSaved(name string) string     { return "sherpa.compass." + name + ".saved" }
func SubjectCompassDeleted(name string) string   { return "sherpa.compass." + name + ".deleted" }
func SubjectCompassEvaluated(name string) string { return "sherpa.compass." + name + ".evaluated" }
