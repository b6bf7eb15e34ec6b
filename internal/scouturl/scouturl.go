// Package scouturl extracts resource identifiers from ScoutAPM web URLs so
// that a pasted dashboard link can be turned into API calls.
package scouturl

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ResourceType classifies what a parsed URL points at.
type ResourceType string

const (
	TypeApp        ResourceType = "app"
	TypeEndpoint   ResourceType = "endpoint"
	TypeTrace      ResourceType = "trace"
	TypeErrorGroup ResourceType = "error_group"
	TypeInsight    ResourceType = "insight"
	TypeUnknown    ResourceType = "unknown"
)

// Parsed is the result of parsing a ScoutAPM URL.
type Parsed struct {
	Type            ResourceType `json:"url_type"`
	AppID           uint64       `json:"app_id,omitempty"`
	EndpointID      string       `json:"endpoint_id,omitempty"`
	TraceID         uint64       `json:"trace_id,omitempty"`
	ErrorID         uint64       `json:"error_id,omitempty"`
	InsightType     string       `json:"insight_type,omitempty"`
	DecodedEndpoint string       `json:"decoded_endpoint,omitempty"`
}

// Parse extracts identifiers from a ScoutAPM web URL.
func Parse(raw string) (Parsed, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Parsed{}, fmt.Errorf("invalid url: %w", err)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	p := Parsed{Type: TypeUnknown}
	if id, ok := idAfter(segments, "apps"); ok {
		p.AppID = id
	}
	switch {
	case contains(segments, "trace"):
		p.Type = TypeTrace
	case contains(segments, "endpoints"):
		p.Type = TypeEndpoint
	case contains(segments, "error_groups"):
		p.Type = TypeErrorGroup
	case contains(segments, "insights"):
		p.Type = TypeInsight
	case len(segments) >= 2 && segments[0] == "apps":
		p.Type = TypeApp
	}

	if s, ok := segmentAfter(segments, "endpoints"); ok {
		p.EndpointID = s
		if decoded, err := DecodeEndpointID(s); err == nil {
			p.DecodedEndpoint = decoded
		}
	}
	if id, ok := idAfter(segments, "trace"); ok {
		p.TraceID = id
	}
	if id, ok := idAfter(segments, "error_groups"); ok {
		p.ErrorID = id
	}
	if s, ok := segmentAfter(segments, "insights"); ok {
		p.InsightType = s
	}
	return p, nil
}

// DecodeEndpointID decodes a base64url (or standard base64) endpoint ID into
// its readable form, e.g. "Controller/orders/show".
func DecodeEndpointID(endpointID string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(endpointID)
	if err != nil {
		b, err = base64.StdEncoding.DecodeString(endpointID)
	}
	if err != nil {
		return "", fmt.Errorf("decode endpoint id: %w", err)
	}
	return string(b), nil
}

func contains(segments []string, want string) bool {
	for _, s := range segments {
		if s == want {
			return true
		}
	}
	return false
}

func segmentAfter(segments []string, marker string) (string, bool) {
	for i, s := range segments {
		if s == marker && i+1 < len(segments) {
			return segments[i+1], true
		}
	}
	return "", false
}

func idAfter(segments []string, marker string) (uint64, bool) {
	s, ok := segmentAfter(segments, marker)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
