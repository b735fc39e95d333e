package selector

import "testing"

// TestIsDynamicIdentifier tests the reload-stability heuristics.
func TestIsDynamicIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "yui timestamp id", token: "yui_3_17_2_1_1650000000000_123", want: true},
		{name: "squarespace block prefix", token: "sqs-block-content", want: true},
		{name: "ember view id", token: "ember1234", want: true},
		{name: "react prefix", token: "react-select-2-input", want: true},
		{name: "css-in-js class", token: "css-1q2w3e", want: true},
		{name: "styled-components class", token: "sc-bdVaJa", want: true},
		{name: "ten digit run", token: "item-1650000000", want: true},
		{name: "nine digits alone is fine", token: "item-165000000", want: false},
		{name: "trailing hash suffix", token: "widget-deadbeef01", want: true},
		{name: "seven trailing hex is fine", token: "promo-abc1234", want: false},
		{name: "transient state class", token: "active", want: true},
		{name: "transient state class cased", token: "LOADING", want: true},
		{name: "transient expanded", token: "expanded", want: true},
		{name: "empty token unstable", token: "", want: true},
		{name: "plain structural class", token: "site-header", want: false},
		{name: "plain id", token: "main-navigation", want: false},
		{name: "hex-like word is not hex", token: "sidebar", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsDynamicIdentifier(tt.token); got != tt.want {
				t.Errorf("IsDynamicIdentifier(%q) = %v, expected %v", tt.token, got, tt.want)
			}
		})
	}
}
