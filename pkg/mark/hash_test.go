package mark

import "testing"

func TestHash(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 2166136261},
		{"A", 3289118412},
		{"abc", 440920331},
		{"é", 1812687940},
		{"😀", 3409036472}, // surrogate pair, hashed as two code units
	}

	for _, tt := range tests {
		if got := Hash(tt.in); got != tt.want {
			t.Errorf("Hash(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHashZero(t *testing.T) {
	if got := Hash("fxdsatwp"); got != 0 {
		t.Fatalf("Hash(fxdsatwp) = %d, want 0", got)
	}
	spec := LogoSpec{Seed: "wvnsanuy", CampaignName: "OrbitPay", Style: StyleFuturistic}
	if got := Hash(spec.SeedComposite()); got != 0 {
		t.Fatalf("Hash(%q) = %d, want 0", spec.SeedComposite(), got)
	}
}
