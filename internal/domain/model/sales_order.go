//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// SalesOrderStatus tracks fulfilment state for a sales order.
type SalesOrderStatus string

const (
	SalesOrderStatusDraft     SalesOrderStatus = "draft"
	SalesOrderStatusConfirmed SalesOrderStatus = "confirmed"
	SalesOrderStatusShipped   SalesOrderStatus = "shipped"
	SalesOrderStatusDelivered SalesOrderStatus = "delivered"
	SalesOrderStatusCancelled SalesOrderStatus = "cancelled"
)

// Valid reports whether the status is supported.
func (s SalesOrderStatus) Valid() bool {
	switch s {
	case SalesOrderStatusDraft, SalesOrderStatusConfirmed, SalesOrderStatusShipped,
		SalesOrderStatusDelivered, SalesOrderStatusCancelled:
		return true
	default:
		return false
	}
}

// SalesOrder is a confirmed order, owned by the backend.
type SalesOrder struct {
	ID             string             `json:"_id"`
	OrderNumber    string             `json:"order_number"`
	CustomerID     string             `json:"customer_id"`
	SalesRequestID string             `json:"sales_request_id,omitempty"`
	Items          []SalesRequestItem `json:"items"`
	Status         SalesOrderStatus   `json:"status"`
	Total          float64            `json:"total"`
	Currency       string             `json:"currency"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// CreateSalesOrderRequest carries the fields accepted when creating a sales order.
type CreateSalesOrderRequest struct {
	CustomerID     string             `json:"customer_id"`
	SalesRequestID string             `json:"sales_request_id,omitempty"`
	Items          []SalesRequestItem `json:"items"`
	Currency       string             `json:"currency,omitempty"`
}

// Validate applies client-side guardrails before the request is forwarded.
func (r *CreateSalesOrderRequest) Validate() error {
	if strings.TrimSpace(r.CustomerID) == "" {
		return errors.New("customer ID is required")
	}
	if len(r.Items) == 0 {
		return errors.New("at least one item is required")
	}
	return nil
}

// UpdateSalesOrderRequest carries partial updates; nil fields are left unchanged.
type UpdateSalesOrderRequest struct {
	Items  []SalesRequestItem `json:"items,omitempty"`
	Status *SalesOrderStatus  `json:"status,omitempty"`
}

// Validate applies client-side guardrails before the request is forwarded.
func (r *UpdateSalesOrderRequest) Validate() error {
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("invalid sales order status")
	}
	return nil
}
