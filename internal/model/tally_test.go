package model

import (
	"math"
	"testing"
)

func TestTally_RanksDescendingWithFirstSeenTies(t *testing.T) {
	var tl Tally
	tl.Add("b", 100)
	tl.Add("a", 300)
	tl.Add("c", 100)
	tl.Add("b", 0)
	tl.Add("d", -5)
	got := tl.Ranked()
	want := []NameAmount{{"a", 300}, {"b", 100}, {"c", 100}}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestTally_ZeroValueIsEmpty(t *testing.T) {
	var tl Tally
	if got := tl.Ranked(); got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestAddAmounts_Saturates(t *testing.T) {
	cases := []struct {
		in   []int64
		want int64
	}{
		{nil, 0},
		{[]int64{100, -30, 5}, 75},
		{[]int64{math.MaxInt64, 1}, math.MaxInt64},
		{[]int64{math.MaxInt64, math.MaxInt64, -5}, math.MaxInt64 - 5},
		{[]int64{0, -math.MaxInt64, -math.MaxInt64}, math.MinInt64},
	}
	for _, c := range cases {
		if got := AddAmounts(c.in...); got != c.want {
			t.Fatalf("AddAmounts(%v)=%d want %d", c.in, got, c.want)
		}
	}
}

func TestTally_DoesNotWrapNegative(t *testing.T) {
	var tl Tally
	tl.Add("x", math.MaxInt64)
	tl.Add("x", math.MaxInt64)
	got := tl.Ranked()
	if len(got) != 1 || got[0].Amount != math.MaxInt64 {
		t.Fatalf("got %+v", got)
	}
}

func TestOrder_OutstandingBalanceTracksMutations(t *testing.T) {
	o := Order{TotalAmount: 10000, AmountPaid: 3000}
	if o.OutstandingBalance() != 7000 {
		t.Fatalf("balance=%d", o.OutstandingBalance())
	}
	o.AmountPaid = 10000
	if o.OutstandingBalance() != 0 {
		t.Fatalf("balance after payment=%d", o.OutstandingBalance())
	}
	o.TotalAmount = 12000
	if o.OutstandingBalance() != 2000 {
		t.Fatalf("balance after total change=%d", o.OutstandingBalance())
	}
}

func TestErrors(t *testing.T) {
	var err error = &DuplicateIDError{Kind: "order", ID: "ORD1"}
	if !IsDuplicate(err) || IsValidation(err) {
		t.Fatalf("classification wrong for %v", err)
	}
	if err.Error() != `order "ORD1" already exists` {
		t.Fatalf("message=%q", err.Error())
	}
	if !IsValidation(ValidationError{Message: "x"}) {
		t.Fatalf("validation not recognized")
	}
}
