package ingest

import "strings"

// EnvSnapshot is a caller-supplied lookup over environment variables,
// passed into the ingestion pipeline instead of reading os.Getenv inside
// it — the only process-wide lookup the core ever consults is the
// environment, and it must arrive as an explicit value (design note §9).
type EnvSnapshot struct {
	Lookup func(key string) (string, bool)
}

// Get returns the value for key, or "" if unset or no Lookup was configured.
func (e EnvSnapshot) Get(key string) string {
	if e.Lookup == nil {
		return ""
	}
	v, _ := e.Lookup(key)
	return v
}

// mockRenderKey builds the MOCK_RENDER_<PREFIX_UPPER> env key for a prefix.
func mockRenderKey(prefix string) string {
	return "MOCK_RENDER_" + strings.ToUpper(prefix)
}
