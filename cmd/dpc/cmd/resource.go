package cmd

import (
	"net/url"
	"strings"

	"github.com/MeKo-Tech/dpc/internal/ingest"
)

// parseResource classifies a CLI-supplied ref/impl value into an
// ingest.Resource: a figma.com URL becomes a Figma resource (file-key and
// node-id pulled from the URL path and query string), any other http(s) URL
// becomes a Url resource, and everything else is treated as a local image
// path.
func parseResource(value string) ingest.Resource {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ingest.Resource{Kind: ingest.KindImage, Value: value}
	}

	if strings.Contains(u.Host, "figma.com") {
		return ingest.Resource{
			Kind:  ingest.KindFigma,
			Value: value,
			Figma: ingest.FigmaInfo{
				FileKey: figmaFileKey(u.Path),
				NodeID:  u.Query().Get("node-id"),
			},
		}
	}

	return ingest.Resource{Kind: ingest.KindURL, Value: value}
}

// figmaFileKey extracts the file key from a Figma URL path of the form
// /file/<key>/... or /design/<key>/....
func figmaFileKey(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if (p == "file" || p == "design") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
