package model

import "time"

type InsuranceDetail struct {
	ID             int64      `db:"insurance_id" json:"insurance_id"`
	UserID         int64      `db:"user_id" json:"user_id"`
	Provider       string     `db:"insurance_provider" json:"insurance_provider"`
	PolicyNumber   string     `db:"policy_number" json:"policy_number"`
	CoverageAmount *float64   `db:"coverage_amount" json:"coverage_amount,omitempty"`
	ExpiryDate     *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
}

type InsuranceRequest struct {
	Provider       string   `json:"insurance_provider" binding:"required"`
	PolicyNumber   string   `json:"policy_number" binding:"required"`
	CoverageAmount *float64 `json:"coverage_amount"`
	ExpiryDate     string   `json:"expiry_date"`
}
