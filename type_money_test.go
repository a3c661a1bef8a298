package goldfees

import "testing"

func TestMoneyRound_bankers(t *testing.T) {
	// Halves round to the even cent, not away from zero.
	testCases := []struct {
		in   string
		want string
	}{
		{"0.125", "0.12"},
		{"0.135", "0.14"},
		{"0.145", "0.14"},
		{"-0.125", "-0.12"},
		{"15", "15.00"},
		{"1.005", "1.00"},
		{"1.015", "1.02"},
	}
	for _, tc := range testCases {
		m, err := ParseMoney(tc.in)
		if err != nil {
			t.Fatalf("ParseMoney(%q): %v", tc.in, err)
		}
		if got := m.Round().Cents(); got != tc.want {
			t.Errorf("Round(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestMoneyDisplay(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{1500, "$1,500.00"},
		{15, "$15.00"},
		{1.5, "$1.50"},
		{0, "$0.00"},
	}
	for _, tc := range testCases {
		if got := M(tc.in).Display(); got != tc.want {
			t.Errorf("M(%v).Display() = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMoneyArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 is exactly 0.3 in decimal, the whole point of not using
	// floats for a multi-year fold.
	a, _ := ParseMoney("0.1")
	b, _ := ParseMoney("0.2")
	c, _ := ParseMoney("0.3")
	if !a.Add(b).Equal(c) {
		t.Errorf("0.1 + 0.2 = %s, want 0.3", a.Add(b))
	}
}

func TestQuantityParse(t *testing.T) {
	if _, err := ParseQuantity("not-a-number"); err == nil {
		t.Error("ParseQuantity accepted garbage")
	}
	q, err := ParseQuantity("0.001")
	if err != nil {
		t.Fatalf("ParseQuantity: %v", err)
	}
	if got := Q(10).Mul(q).String(); got != "0.01" {
		t.Errorf("10 * 0.001 = %s, want 0.01", got)
	}
}
