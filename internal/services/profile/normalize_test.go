package profile

import (
	"errors"
	"testing"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
)

func defaults() map[string]interface{} {
	return New().Snapshot()
}

func gapFor(t *testing.T, err error, field string) ValidationGap {
	t.Helper()
	var ipe *InvalidProfileError
	if !errors.As(err, &ipe) {
		t.Fatalf("expected *InvalidProfileError, got %v", err)
	}
	for _, g := range ipe.Gaps {
		if g.Field == field {
			return g
		}
	}
	t.Fatalf("no gap for %s in %v", field, ipe.Gaps)
	return ValidationGap{}
}

func TestNormalizeTyping(t *testing.T) {
	v := defaults()
	v["age"] = "45"
	v["monthly_charges"] = "89.5"
	v["contract_type"] = "  one YEAR "
	v["payment_method"] = "bank transfer"
	v["gender"] = "male"

	p, err := Normalize(v)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if p.Age != 45 || p.MonthlyCharges != 89.5 {
		t.Fatalf("unexpected numbers: %d %v", p.Age, p.MonthlyCharges)
	}
	if p.ContractType != models.ContractOneYear || p.PaymentMethod != models.PaymentBankTransfer || p.Gender != models.GenderMale {
		t.Fatalf("unexpected enums: %q %q %q", p.ContractType, p.PaymentMethod, p.Gender)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	v := defaults()
	v["customer_satisfaction"] = "4.3"
	v["failed_transaction_rate"] = 0.07
	p, err := Normalize(v)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	values, err := p.Values()
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	again, err := Normalize(values)
	if err != nil {
		t.Fatalf("renormalize: %v", err)
	}
	if again != p {
		t.Fatalf("normalize not idempotent:\n%+v\n%+v", p, again)
	}
}

func TestNormalizeRejectsEmptyString(t *testing.T) {
	v := defaults()
	v["total_charges"] = ""
	_, err := Normalize(v)
	if g := gapFor(t, err, "total_charges"); g.Code != CodeEmpty {
		t.Fatalf("expected %s, got %s", CodeEmpty, g.Code)
	}
}

func TestNormalizeRange(t *testing.T) {
	v := defaults()
	v["age"] = 17.0
	v["customer_satisfaction"] = "5.1"
	_, err := Normalize(v)

	g := gapFor(t, err, "age")
	if g.Code != CodeRange || g.Message != "age must be between 18 and 90" {
		t.Fatalf("unexpected gap %+v", g)
	}
	if g := gapFor(t, err, "customer_satisfaction"); g.Code != CodeRange {
		t.Fatalf("unexpected gap %+v", g)
	}
}

func TestNormalizeBoundsInclusive(t *testing.T) {
	v := defaults()
	v["age"] = 90
	v["failed_transaction_rate"] = 1
	v["num_products"] = "1"
	if _, err := Normalize(v); err != nil {
		t.Fatalf("bounds must be accepted: %v", err)
	}
}

func TestNormalizeWholeNumbers(t *testing.T) {
	v := defaults()
	v["open_tickets"] = 2.5
	v["tenure_months"] = "1e20"
	_, err := Normalize(v)
	if g := gapFor(t, err, "open_tickets"); g.Code != CodeNotWhole {
		t.Fatalf("unexpected gap %+v", g)
	}
	if g := gapFor(t, err, "tenure_months"); g.Code != CodeRange {
		t.Fatalf("unexpected gap %+v", g)
	}
}

func TestNormalizeEnumMembership(t *testing.T) {
	v := defaults()
	v["payment_method"] = "Crypto"
	_, err := Normalize(v)
	g := gapFor(t, err, "payment_method")
	if g.Code != CodeOneOf {
		t.Fatalf("unexpected gap %+v", g)
	}
	if g.Message != "payment_method must be one of: Electronic Check, Mailed Check, Bank Transfer, Credit Card" {
		t.Fatalf("unexpected message %q", g.Message)
	}
}

func TestNormalizeMissingAndUnknown(t *testing.T) {
	v := defaults()
	delete(v, "gender")
	v["nickname"] = "bob"
	_, err := Normalize(v)
	if g := gapFor(t, err, "gender"); g.Code != CodeRequired {
		t.Fatalf("unexpected gap %+v", g)
	}
	if g := gapFor(t, err, "nickname"); g.Code != CodeUnknownField {
		t.Fatalf("unexpected gap %+v", g)
	}
}

func TestNormalizeReportsEachFieldOnce(t *testing.T) {
	v := defaults()
	v["age"] = "abc"
	_, err := Normalize(v)
	var ipe *InvalidProfileError
	if !errors.As(err, &ipe) {
		t.Fatalf("expected *InvalidProfileError, got %v", err)
	}
	if len(ipe.Gaps) != 1 || ipe.Gaps[0].Code != CodeNotNumeric {
		t.Fatalf("expected a single numeric gap, got %+v", ipe.Gaps)
	}
	if fields := ipe.Fields(); len(fields) != 1 || fields[0] != "age" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestNormalizeGapOrder(t *testing.T) {
	v := defaults()
	v["zzz"] = 1
	v["gender"] = "x"
	v["age"] = ""
	_, err := Normalize(v)
	var ipe *InvalidProfileError
	if !errors.As(err, &ipe) {
		t.Fatalf("expected *InvalidProfileError, got %v", err)
	}
	got := ipe.Fields()
	want := []string{"age", "gender", "zzz"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
