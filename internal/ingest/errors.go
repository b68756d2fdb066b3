package ingest

import "github.com/MeKo-Tech/dpc/internal/dpcerr"

// BackendErrorKind enumerates the outcomes a RenderBackend/OcrBackend call
// may signal beyond a plain error, per §6.
type BackendErrorKind string

const (
	BackendCancelled   BackendErrorKind = "cancelled"
	BackendTimeout     BackendErrorKind = "timeout"
	BackendAuth        BackendErrorKind = "auth"
	BackendNetwork     BackendErrorKind = "network"
	BackendUnsupported BackendErrorKind = "unsupported"
	BackendUnavailable BackendErrorKind = "unavailable"
)

// BackendError is the error type RenderBackend implementations should
// return for the outcomes named in §6; ingestion maps each Kind to the
// dpcerr taxonomy.
type BackendError struct {
	Kind    BackendErrorKind
	Message string
}

func (e *BackendError) Error() string { return string(e.Kind) + ": " + e.Message }

func classifyBackendError(err error) error {
	be, ok := err.(*BackendError)
	if !ok {
		return dpcerr.Wrap(dpcerr.Unknown, "render backend failed", err)
	}
	switch be.Kind {
	case BackendCancelled:
		return dpcerr.Wrap(dpcerr.Network, "render cancelled", err)
	case BackendTimeout:
		return dpcerr.Wrap(dpcerr.Network, "render timed out", err).
			WithRemediation("Increase the navigation/network-idle/process timeouts and retry")
	case BackendAuth:
		return dpcerr.Wrap(dpcerr.Figma, "render authentication failed", err).
			WithRemediation("Check FIGMA_TOKEN/FIGMA_OAUTH_TOKEN and rate limits; retry after waiting")
	case BackendNetwork:
		return dpcerr.Wrap(dpcerr.Network, "render transport failure", err)
	case BackendUnsupported:
		return dpcerr.Wrap(dpcerr.Config, "resource kind unsupported by backend", err)
	case BackendUnavailable:
		return dpcerr.Wrap(dpcerr.Config, "render backend unavailable", err)
	default:
		return dpcerr.Wrap(dpcerr.Unknown, "render backend failed", err)
	}
}
