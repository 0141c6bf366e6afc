package model

import "testing"

func TestCanTransition(t *testing.T) {
	legal := []struct{ from, to Status }{
		{StatusPending, StatusUploaded},
		{StatusUploaded, StatusProcessing},
		{StatusUploaded, StatusFailed},
		{StatusProcessing, StatusReady},
		{StatusProcessing, StatusFailed},
		{StatusFailed, StatusProcessing},
		{StatusFailed, StatusUploaded},
		{StatusReady, StatusUploaded},
	}
	for _, tc := range legal {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("%s → %s should be legal", tc.from, tc.to)
		}
	}

	illegal := []struct{ from, to Status }{
		{StatusPending, StatusProcessing},
		{StatusPending, StatusReady},
		{StatusUploaded, StatusReady},
		{StatusReady, StatusProcessing},
		{StatusFailed, StatusReady},
		{StatusReady, StatusReady},
	}
	for _, tc := range illegal {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("%s → %s should be illegal", tc.from, tc.to)
		}
	}
}

func TestValidateTransition(t *testing.T) {
	if err := ValidateTransition(StatusUploaded, StatusProcessing); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateTransition(StatusPending, StatusReady); err == nil {
		t.Error("expected an error for an illegal edge")
	}
	if err := ValidateTransition("limbo", StatusReady); err == nil {
		t.Error("expected an error for an unknown status")
	}
}

func TestVariantsRoundTrip(t *testing.T) {
	v := Variants{PurposeThumb: "https://cdn.example.com/t.webp"}
	raw, err := v.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out Variants
	if err := out.Scan(raw.([]byte)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if out[PurposeThumb] != v[PurposeThumb] {
		t.Errorf("round trip lost data: %v", out)
	}
}

func TestVariantsRejectsUnknownKeys(t *testing.T) {
	if _, err := (Variants{"gigantic": "u"}).Value(); err == nil {
		t.Error("Value accepted an unknown purpose")
	}
	var v Variants
	if err := v.Scan([]byte(`{"gigantic":"u"}`)); err == nil {
		t.Error("Scan accepted an unknown purpose")
	}
}

func TestVariantsScanNull(t *testing.T) {
	var v Variants
	if err := v.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if v == nil || len(v) != 0 {
		t.Errorf("Scan(nil) = %v; want an empty map", v)
	}
}
