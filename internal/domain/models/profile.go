package models

import (
	"encoding/json"
	"fmt"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

type ContractType string

const (
	ContractMonthToMonth ContractType = "Month-to-Month"
	ContractOneYear      ContractType = "One Year"
	ContractTwoYear      ContractType = "Two Year"
)

type PaymentMethod string

const (
	PaymentElectronicCheck PaymentMethod = "Electronic Check"
	PaymentMailedCheck     PaymentMethod = "Mailed Check"
	PaymentBankTransfer    PaymentMethod = "Bank Transfer"
	PaymentCreditCard      PaymentMethod = "Credit Card"
)

// Payload is the wire-ready customer profile sent to the prediction service.
// Field order and names follow the field table.
type Payload struct {
	Age                      int           `json:"age" validate:"profile_range"`
	TenureMonths             int           `json:"tenure_months" validate:"profile_range"`
	MonthlyCharges           float64       `json:"monthly_charges" validate:"profile_range"`
	TotalCharges             float64       `json:"total_charges" validate:"profile_range"`
	MonthlyMinutes           float64       `json:"monthly_minutes" validate:"profile_range"`
	DataUsageGB              float64       `json:"data_usage_gb" validate:"profile_range"`
	NumProducts              int           `json:"num_products" validate:"profile_range"`
	FeatureAdoptionScore     float64       `json:"feature_adoption_score" validate:"profile_range"`
	LastLoginDaysAgo         int           `json:"last_login_days_ago" validate:"profile_range"`
	LoginsLastMonth          int           `json:"logins_last_month" validate:"profile_range"`
	CustomerSatisfaction     float64       `json:"customer_satisfaction" validate:"profile_range"`
	TotalTransactions        int           `json:"total_transactions" validate:"profile_range"`
	TotalFailedTransactions  int           `json:"total_failed_transactions" validate:"profile_range"`
	AvgTransactionAmount     float64       `json:"avg_transaction_amount" validate:"profile_range"`
	DaysSinceLastTransaction int           `json:"days_since_last_transaction" validate:"profile_range"`
	FailedTransactionRate    float64       `json:"failed_transaction_rate" validate:"profile_range"`
	TotalTickets             int           `json:"total_tickets" validate:"profile_range"`
	OpenTickets              int           `json:"open_tickets" validate:"profile_range"`
	HighPriorityTickets      int           `json:"high_priority_tickets" validate:"profile_range"`
	AvgResolutionTime        float64       `json:"avg_resolution_time" validate:"profile_range"`
	ContractType             ContractType  `json:"contract_type" validate:"oneof='Month-to-Month' 'One Year' 'Two Year'"`
	PaymentMethod            PaymentMethod `json:"payment_method" validate:"oneof='Electronic Check' 'Mailed Check' 'Bank Transfer' 'Credit Card'"`
	Gender                   Gender        `json:"gender" validate:"oneof=Male Female"`
}

// Values returns the payload as a field-name keyed map with JSON-native value types
// (float64 numbers, string enums).
func (p Payload) Values() (map[string]interface{}, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return out, nil
}
