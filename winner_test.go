package histrates

import "testing"

func TestWinner(t *testing.T) {
	testCases := []struct {
		rate, ret float64
		want      Outcome
	}{
		{rate: 5.1, ret: 12.3, want: Invest},
		{rate: 5.1, ret: -3.0, want: Offset},
		{rate: 5.1, ret: 5.105, want: Tie},
		{rate: 5.1, ret: 5.12, want: Invest},
	}
	for _, tc := range testCases {
		if got := Winner(tc.rate, tc.ret); got != tc.want {
			t.Errorf("Winner(%v, %v) = %v want %v", tc.rate, tc.ret, got, tc.want)
		}
	}
}

func TestOutcomes(t *testing.T) {
	a, b := alignedFixture()
	al, err := Merge(a, b)
	if err != nil {
		t.Fatal(err)
	}
	// 100 000.00 AUD in cents.
	got, err := Outcomes(al, 10000000, "AUD")
	if err != nil {
		t.Fatalf("Outcomes() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Outcomes() = %d years want 2", len(got))
	}
	o := got[0]
	if o.Year != 2016 || o.Winner != Invest {
		t.Errorf("Outcomes()[0] = %+v", o)
	}
	if o.Saved.Amount() != 380000 || o.Earned.Amount() != 1210000 || o.Gap.Amount() != 830000 {
		t.Errorf("Outcomes()[0] amounts = %v %v %v", o.Saved.Display(), o.Earned.Display(), o.Gap.Display())
	}
}

func TestMinorUnits(t *testing.T) {
	testCases := []struct {
		amount   int64
		currency string
		want     int64
	}{
		{amount: 100000, currency: "AUD", want: 10000000},
		{amount: 100000, currency: "JPY", want: 100000},
	}
	for _, tc := range testCases {
		got, err := MinorUnits(tc.amount, tc.currency)
		if err != nil || got != tc.want {
			t.Errorf("MinorUnits(%d, %q) = %d, %v want %d", tc.amount, tc.currency, got, err, tc.want)
		}
	}
	if _, err := MinorUnits(1, "XXXX"); err == nil {
		t.Errorf("MinorUnits(unknown currency) expected an error, but got none")
	}
}
