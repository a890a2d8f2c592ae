package bloom

import (
	"fmt"
	"testing"
)

// ===== Constructor =====

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		capacity uint64
		fpRate   float64
		wantErr  bool
	}{
		{"valid", 1000, 0.01, false},
		{"zero capacity", 0, 0.01, true},
		{"fpRate zero", 1000, 0, true},
		{"fpRate one", 1000, 1, true},
		{"fpRate negative", 1000, -0.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.capacity, tt.fpRate)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// ===== Method: Add / Has =====

func TestBloom_AddHas(t *testing.T) {
	b, err := New(1000, 0.01)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	keys := []uint64{1, 0xdeadbeef, 1 << 40}
	for _, k := range keys {
		b.Add(k)
	}
	for _, k := range keys {
		if !b.Has(k) {
			t.Errorf("Has(%d) = false after Add, want true", k)
		}
	}
}

func TestBloom_AddIfNotHas(t *testing.T) {
	b, err := New(1000, 0.01)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	const key = uint64(12345)
	if b.AddIfNotHas(key) {
		t.Error("AddIfNotHas() first call = true, want false")
	}
	if !b.AddIfNotHas(key) {
		t.Error("AddIfNotHas() second call = false, want true")
	}
}

func TestBloom_Strings(t *testing.T) {
	b, err := New(1000, 0.01)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	b.AddString("sword")
	if !b.HasString("sword") {
		t.Error(`HasString("sword") = false after AddString, want true`)
	}
}

func TestBloom_FalsePositiveRate(t *testing.T) {
	const n = 10000
	b, err := New(n, 0.01)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for i := 0; i < n; i++ {
		b.AddString(fmt.Sprintf("member-%d", i))
	}

	falsePositives := 0
	for i := 0; i < n; i++ {
		if b.HasString(fmt.Sprintf("outsider-%d", i)) {
			falsePositives++
		}
	}

	// Allow generous headroom over the configured 1% rate.
	if rate := float64(falsePositives) / n; rate > 0.03 {
		t.Errorf("false positive rate = %.4f, want <= 0.03", rate)
	}
}

// ===== Method: Clear =====

func TestBloom_Clear(t *testing.T) {
	b, err := New(1000, 0.01)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	b.Add(42)
	b.Clear()
	if b.Has(42) {
		t.Error("Has(42) = true after Clear, want false")
	}
}
