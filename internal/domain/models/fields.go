package models

import "strings"

// FieldKind classifies a profile field.
type FieldKind int

const (
	KindInt FieldKind = iota
	KindFloat
	KindEnum
)

func (k FieldKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// FieldSpec describes one customer-profile field: its wire name, kind,
// inclusive range, slider step and session default.
type FieldSpec struct {
	Name    string
	Label   string
	Kind    FieldKind
	Min     float64
	Max     float64
	Step    float64
	Unit    string
	Default interface{}
	Options []string
}

// Numeric reports whether the field holds a number.
func (f FieldSpec) Numeric() bool { return f.Kind == KindInt || f.Kind == KindFloat }

// InRange reports whether v lies in [Min, Max].
func (f FieldSpec) InRange(v float64) bool { return v >= f.Min && v <= f.Max }

// Canonical maps s to its canonical option, ignoring case and surrounding spaces.
func (f FieldSpec) Canonical(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, o := range f.Options {
		if strings.EqualFold(o, s) {
			return o, true
		}
	}
	return "", false
}

var fieldSpecs = []FieldSpec{
	{Name: "age", Label: "Age", Kind: KindInt, Min: 18, Max: 90, Step: 1, Default: 40.0},
	{Name: "tenure_months", Label: "Tenure (Months)", Kind: KindInt, Min: 0, Max: 72, Step: 1, Default: 24.0},
	{Name: "monthly_charges", Label: "Monthly Charges ($)", Kind: KindFloat, Min: 15, Max: 150, Step: 0.5, Unit: "$", Default: 70.0},
	{Name: "total_charges", Label: "Total Charges ($)", Kind: KindFloat, Min: 0, Max: 10000, Step: 10, Unit: "$", Default: 1500.0},
	{Name: "monthly_minutes", Label: "Monthly Minutes", Kind: KindFloat, Min: 0, Max: 2000, Step: 10, Default: 400.0},
	{Name: "data_usage_gb", Label: "Data Usage (GB)", Kind: KindFloat, Min: 0, Max: 500, Step: 1, Unit: " GB", Default: 20.0},
	{Name: "num_products", Label: "Products Owned", Kind: KindInt, Min: 1, Max: 4, Step: 1, Default: 2.0},
	{Name: "feature_adoption_score", Label: "Adoption Score", Kind: KindFloat, Min: 0, Max: 100, Step: 1, Default: 50.0},
	{Name: "last_login_days_ago", Label: "Days Since Login", Kind: KindInt, Min: 0, Max: 365, Step: 1, Default: 5.0},
	{Name: "logins_last_month", Label: "Logins Last Month", Kind: KindInt, Min: 0, Max: 100, Step: 1, Default: 10.0},
	{Name: "customer_satisfaction", Label: "Satisfaction (1-5)", Kind: KindFloat, Min: 1, Max: 5, Step: 0.1, Default: 3.0},
	{Name: "total_transactions", Label: "Total Transactions", Kind: KindInt, Min: 0, Max: 200, Step: 1, Default: 24.0},
	{Name: "total_failed_transactions", Label: "Failed Txns", Kind: KindInt, Min: 0, Max: 50, Step: 1, Default: 0.0},
	{Name: "avg_transaction_amount", Label: "Avg Transaction ($)", Kind: KindFloat, Min: 0, Max: 5000, Step: 0.5, Unit: "$", Default: 70.0},
	{Name: "days_since_last_transaction", Label: "Days Since Last Txn", Kind: KindInt, Min: 0, Max: 365, Step: 1, Default: 15.0},
	{Name: "failed_transaction_rate", Label: "Failed Txn Rate", Kind: KindFloat, Min: 0, Max: 1, Step: 0.01, Default: 0.0},
	{Name: "total_tickets", Label: "Total Tickets", Kind: KindInt, Min: 0, Max: 50, Step: 1, Default: 2.0},
	{Name: "open_tickets", Label: "Open Tickets", Kind: KindInt, Min: 0, Max: 10, Step: 1, Default: 0.0},
	{Name: "high_priority_tickets", Label: "High Priority Tickets", Kind: KindInt, Min: 0, Max: 20, Step: 1, Default: 0.0},
	{Name: "avg_resolution_time", Label: "Resolution Time (Hrs)", Kind: KindFloat, Min: 0, Max: 200, Step: 1, Default: 24.0},
	{Name: "contract_type", Label: "Contract Type", Kind: KindEnum, Default: string(ContractMonthToMonth),
		Options: []string{string(ContractMonthToMonth), string(ContractOneYear), string(ContractTwoYear)}},
	{Name: "payment_method", Label: "Payment Method", Kind: KindEnum, Default: string(PaymentCreditCard),
		Options: []string{string(PaymentElectronicCheck), string(PaymentMailedCheck), string(PaymentBankTransfer), string(PaymentCreditCard)}},
	{Name: "gender", Label: "Gender", Kind: KindEnum, Default: string(GenderFemale),
		Options: []string{string(GenderMale), string(GenderFemale)}},
}

var fieldIndex = func() map[string]int {
	m := make(map[string]int, len(fieldSpecs))
	for i, f := range fieldSpecs {
		m[f.Name] = i
	}
	return m
}()

// Fields returns the profile field table in wire order.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(fieldSpecs))
	copy(out, fieldSpecs)
	return out
}

// LookupField returns the field description for a wire name.
func LookupField(name string) (FieldSpec, bool) {
	i, ok := fieldIndex[name]
	if !ok {
		return FieldSpec{}, false
	}
	return fieldSpecs[i], true
}
