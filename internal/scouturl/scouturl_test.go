package scouturl

import (
	"encoding/base64"
	"testing"
)

func TestParseTraceURL(t *testing.T) {
	p, err := Parse("https://scoutapm.com/apps/123/endpoints/abc/trace/456")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Type != TypeTrace {
		t.Fatalf("expected trace, got %s", p.Type)
	}
	if p.AppID != 123 || p.TraceID != 456 {
		t.Fatalf("unexpected ids: %+v", p)
	}
	if p.EndpointID != "abc" {
		t.Fatalf("unexpected endpoint id: %q", p.EndpointID)
	}
}

func TestParseAppURL(t *testing.T) {
	p, err := Parse("https://scoutapm.com/apps/42")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Type != TypeApp || p.AppID != 42 {
		t.Fatalf("unexpected parse: %+v", p)
	}
}

func TestParseInsightURL(t *testing.T) {
	p, err := Parse("https://scoutapm.com/apps/42/insights/n_plus_one")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Type != TypeInsight || p.InsightType != "n_plus_one" {
		t.Fatalf("unexpected parse: %+v", p)
	}
}

func TestDecodeEndpointID(t *testing.T) {
	enc := base64.RawURLEncoding.EncodeToString([]byte("Controller/orders/show"))
	got, err := DecodeEndpointID(enc)
	if err != nil {
		t.Fatalf("DecodeEndpointID: %v", err)
	}
	if got != "Controller/orders/show" {
		t.Fatalf("unexpected decode: %q", got)
	}

	std := base64.StdEncoding.EncodeToString([]byte("Controller/a"))
	if _, err := DecodeEndpointID(std); err != nil {
		t.Fatalf("standard base64 should decode too: %v", err)
	}

	if _, err := DecodeEndpointID("!!not-base64!!"); err == nil {
		t.Fatal("expected decode error")
	}
}
