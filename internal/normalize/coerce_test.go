package normalize

import (
	"testing"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float passes through", 12.12, 12.12},
		{"int passes through", 7, 7},
		{"currency and commas", "$1,234.50", 1234.50},
		{"comma thousands integer", "2,000", 2000},
		{"euro symbol", "€45.99", 45.99},
		{"pound symbol", "£10", 10},
		{"whitespace", "  19.95  ", 19.95},
		{"plain integer string", "42", 42},
		{"malformed string", "abc", 0},
		{"empty string", "", 0},
		{"mixed garbage", "12abc", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToNumber(tt.in); got != tt.want {
				t.Errorf("ToNumber(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToOptionalNumber(t *testing.T) {
	if got := ToOptionalNumber(nil); got != nil {
		t.Errorf("ToOptionalNumber(nil) = %v, want nil", *got)
	}
	if got := ToOptionalNumber("abc"); got != nil {
		t.Errorf("ToOptionalNumber(%q) = %v, want nil", "abc", *got)
	}
	if got := ToOptionalNumber(""); got != nil {
		t.Errorf("ToOptionalNumber(%q) = %v, want nil", "", *got)
	}
	if got := ToOptionalNumber("null"); got != nil {
		t.Errorf("ToOptionalNumber(%q) = %v, want nil", "null", *got)
	}
	if got := ToOptionalNumber("$1,500.25"); got == nil || *got != 1500.25 {
		t.Errorf("ToOptionalNumber($1,500.25) = %v, want 1500.25", got)
	}
	if got := ToOptionalNumber(3.0); got == nil || *got != 3.0 {
		t.Errorf("ToOptionalNumber(3.0) = %v, want 3", got)
	}
}

func TestToOptionalNumber_UncoercibleNonStringsStayAbsent(t *testing.T) {
	// Non-numeric shapes from a loose reply must not become a present zero,
	// which would be indistinguishable from a printed 0 quantity.
	for _, v := range []any{true, false, map[string]any{"n": 1}, []any{"x"}} {
		if got := ToOptionalNumber(v); got != nil {
			t.Errorf("ToOptionalNumber(%v) = %v, want nil", v, *got)
		}
	}
}
