package cli

import "testing"

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{1_500, "$1.5K"},
		{1_234_000, "$1.2M"},
		{2_400_000_000, "$2.40B"},
		{3_717_100_000, "$3.72B"},
		{-25_500_000, "-$25.5M"},
	}
	for _, c := range cases {
		if got := FormatMoney(c.in); got != c.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatMoneyFull(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{1_234_567, "$1,234,567"},
		{3_717_100_000, "$3,717,100,000"},
		{-42_000, "-$42,000"},
	}
	for _, c := range cases {
		if got := FormatMoneyFull(c.in); got != c.want {
			t.Errorf("FormatMoneyFull(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatVariance(t *testing.T) {
	if got := FormatVariance(3.2); got != "▲ 3.2%" {
		t.Errorf("positive = %q", got)
	}
	if got := FormatVariance(-1.5); got != "▼ 1.5%" {
		t.Errorf("negative = %q", got)
	}
	if got := FormatVariance(0); got != "· 0.0%" {
		t.Errorf("zero = %q", got)
	}
}

func TestFormatMaybe(t *testing.T) {
	if got := FormatMaybe(nil); got != Dash {
		t.Errorf("nil = %q, want dash", got)
	}
	v := 5_000_000.0
	if got := FormatMaybe(&v); got != "$5.0M" {
		t.Errorf("value = %q, want $5.0M", got)
	}
	if got := FormatMaybePercent(nil); got != Dash {
		t.Errorf("nil pct = %q, want dash", got)
	}
	p := -3.5
	if got := FormatMaybePercent(&p); got != "-3.5%" {
		t.Errorf("pct = %q, want -3.5%%", got)
	}
}

func TestRenderLollipopTrack(t *testing.T) {
	track := RenderLollipopTrack(20, 25, 75)
	runes := []rune(track)
	if len(runes) != 20 {
		t.Fatalf("track len = %d, want 20", len(runes))
	}

	var hollow, filled int
	for _, r := range runes {
		switch r {
		case '○':
			hollow++
		case '●':
			filled++
		}
	}
	if hollow != 1 || filled != 1 {
		t.Errorf("markers = %d hollow / %d filled, want 1/1", hollow, filled)
	}
}

func TestRenderLollipopTrack_CoincidentMarkers(t *testing.T) {
	// Same position: the filled marker wins the cell.
	track := RenderLollipopTrack(20, 50, 50)
	var filled bool
	for _, r := range track {
		if r == '●' {
			filled = true
		}
		if r == '○' {
			t.Error("hollow marker should be covered by the filled one")
		}
	}
	if !filled {
		t.Error("filled marker missing")
	}
}

func TestRenderHorizontalBar(t *testing.T) {
	if got := RenderHorizontalBar(50, 100, 10); len([]rune(got)) != 5 {
		t.Errorf("half bar = %q, want 5 cells", got)
	}
	if got := RenderHorizontalBar(200, 100, 10); len([]rune(got)) != 10 {
		t.Errorf("overflow bar = %q, want clamped to 10", got)
	}
	if got := RenderHorizontalBar(10, 0, 10); got != "" {
		t.Errorf("zero max = %q, want empty", got)
	}
}
