package metrics

import (
	"math"
	"sync"
	"testing"

	"github.com/alnah/go-mdlayout/internal/fonts"
	"github.com/alnah/go-mdlayout/internal/style"
)

func newMeasurer(t *testing.T) *Measurer {
	t.Helper()
	m, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return m
}

func TestMeasureTextScalesWithSize(t *testing.T) {
	t.Parallel()

	m := newMeasurer(t)
	small, err := m.MeasureText(style.New().WithFontSize(10), "Hello")
	if err != nil {
		t.Fatalf("MeasureText() error: %v", err)
	}
	large, err := m.MeasureText(style.New().WithFontSize(20), "Hello")
	if err != nil {
		t.Fatalf("MeasureText() error: %v", err)
	}
	if small <= 0 {
		t.Fatalf("width = %v, want > 0", small)
	}
	if ratio := large / small; math.Abs(ratio-2) > 0.05 {
		t.Errorf("20pt/10pt width ratio = %v, want about 2", ratio)
	}
}

func TestMeasureMonoIsFixedPitch(t *testing.T) {
	t.Parallel()

	m := newMeasurer(t)
	mono := style.New().WithFamily(style.FamilyMono)
	narrow, _ := m.MeasureText(mono, "iiii")
	wide, _ := m.MeasureText(mono, "WWWW")
	if math.Abs(narrow-wide) > 0.01 {
		t.Errorf("mono widths differ: iiii=%v WWWW=%v", narrow, wide)
	}

	sansNarrow, _ := m.MeasureText(style.New(), "iiii")
	sansWide, _ := m.MeasureText(style.New(), "WWWW")
	if sansNarrow >= sansWide {
		t.Errorf("proportional widths: iiii=%v WWWW=%v, want iiii narrower", sansNarrow, sansWide)
	}
}

func TestMeasureSpace(t *testing.T) {
	t.Parallel()

	m := newMeasurer(t)
	space, err := m.MeasureSpace(style.New())
	if err != nil {
		t.Fatalf("MeasureSpace() error: %v", err)
	}
	if space <= 0 || space >= fonts.DefaultSize {
		t.Errorf("space width = %v, want in (0, %v)", space, fonts.DefaultSize)
	}
}

func TestMeasureInvalidSize(t *testing.T) {
	t.Parallel()

	m := newMeasurer(t)
	if _, err := m.MeasureText(style.New().WithFontSize(0), "x"); err == nil {
		t.Error("MeasureText() with size 0: expected error")
	}
}

func TestMeasureConcurrent(t *testing.T) {
	t.Parallel()

	m := newMeasurer(t)
	want, _ := m.MeasureText(style.New().Bold(), "concurrent")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				got, err := m.MeasureText(style.New().Bold(), "concurrent")
				if err != nil || got != want {
					t.Errorf("MeasureText() = %v, %v; want %v", got, err, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}
