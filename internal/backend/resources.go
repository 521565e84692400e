package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	apperrors "github.com/salesops/so-ui-api/internal/errors"

	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
	"github.com/salesops/so-ui-api/internal/domain/model"
)

// ListResult is the paged shape the backend returns for collection endpoints.
type ListResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// listQuery translates ListOptions into backend query parameters.
func listQuery(opts model.ListOptions) url.Values {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Q != "" {
		q.Set("q", opts.Q)
	}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	return q
}

// Generic CRUD plumbing shared by every resource.

func list[T any](ctx context.Context, c *Client, path string, opts model.ListOptions) (ListResult[T], error) {
	var out ListResult[T]
	if err := c.do(ctx, http.MethodGet, path, listQuery(opts), nil, &out); err != nil {
		return ListResult[T]{}, err
	}
	return out, nil
}

func get[T any](ctx context.Context, c *Client, path, id string) (T, error) {
	var out T
	if id == "" {
		return out, apperrors.Validation("resource id is required")
	}
	if err := c.do(ctx, http.MethodGet, path+"/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return out, err
	}
	return out, nil
}

type validator interface{ Validate() error }

func create[T any](ctx context.Context, c *Client, path string, req validator) (T, error) {
	var out T
	if err := req.Validate(); err != nil {
		return out, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid create request")
	}
	if err := c.do(ctx, http.MethodPost, path, nil, req, &out); err != nil {
		return out, err
	}
	return out, nil
}

func update[T any](ctx context.Context, c *Client, path, id string, req validator) (T, error) {
	var out T
	if id == "" {
		return out, apperrors.Validation("resource id is required")
	}
	if err := req.Validate(); err != nil {
		return out, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid update request")
	}
	if err := c.do(ctx, http.MethodPut, path+"/"+url.PathEscape(id), nil, req, &out); err != nil {
		return out, err
	}
	return out, nil
}

func remove(ctx context.Context, c *Client, path, id string) error {
	if id == "" {
		return apperrors.Validation("resource id is required")
	}
	return c.do(ctx, http.MethodDelete, path+"/"+url.PathEscape(id), nil, nil, nil)
}

// Leads

func (c *Client) ListLeads(ctx context.Context, opts model.ListOptions) (ListResult[model.Lead], error) {
	return list[model.Lead](ctx, c, "/api/leads", opts)
}

func (c *Client) GetLead(ctx context.Context, id string) (model.Lead, error) {
	return get[model.Lead](ctx, c, "/api/leads", id)
}

func (c *Client) CreateLead(ctx context.Context, req model.CreateLeadRequest) (model.Lead, error) {
	return create[model.Lead](ctx, c, "/api/leads", &req)
}

func (c *Client) UpdateLead(ctx context.Context, id string, req model.UpdateLeadRequest) (model.Lead, error) {
	return update[model.Lead](ctx, c, "/api/leads", id, &req)
}

func (c *Client) DeleteLead(ctx context.Context, id string) error {
	return remove(ctx, c, "/api/leads", id)
}

// Opportunities

func (c *Client) ListOpportunities(ctx context.Context, opts model.ListOptions) (ListResult[model.Opportunity], error) {
	return list[model.Opportunity](ctx, c, "/api/opportunities", opts)
}

func (c *Client) GetOpportunity(ctx context.Context, id string) (model.Opportunity, error) {
	return get[model.Opportunity](ctx, c, "/api/opportunities", id)
}

func (c *Client) CreateOpportunity(ctx context.Context, req model.CreateOpportunityRequest) (model.Opportunity, error) {
	return create[model.Opportunity](ctx, c, "/api/opportunities", &req)
}

func (c *Client) UpdateOpportunity(ctx context.Context, id string, req model.UpdateOpportunityRequest) (model.Opportunity, error) {
	return update[model.Opportunity](ctx, c, "/api/opportunities", id, &req)
}

func (c *Client) DeleteOpportunity(ctx context.Context, id string) error {
	return remove(ctx, c, "/api/opportunities", id)
}

// Sales requests

func (c *Client) ListSalesRequests(ctx context.Context, opts model.ListOptions) (ListResult[model.SalesRequest], error) {
	return list[model.SalesRequest](ctx, c, "/api/sales-requests", opts)
}

func (c *Client) GetSalesRequest(ctx context.Context, id string) (model.SalesRequest, error) {
	return get[model.SalesRequest](ctx, c, "/api/sales-requests", id)
}

func (c *Client) CreateSalesRequest(ctx context.Context, req model.CreateSalesRequestRequest) (model.SalesRequest, error) {
	return create[model.SalesRequest](ctx, c, "/api/sales-requests", &req)
}

func (c *Client) UpdateSalesRequest(ctx context.Context, id string, req model.UpdateSalesRequestRequest) (model.SalesRequest, error) {
	return update[model.SalesRequest](ctx, c, "/api/sales-requests", id, &req)
}

func (c *Client) DeleteSalesRequest(ctx context.Context, id string) error {
	return remove(ctx, c, "/api/sales-requests", id)
}

// Sales orders

func (c *Client) ListSalesOrders(ctx context.Context, opts model.ListOptions) (ListResult[model.SalesOrder], error) {
	return list[model.SalesOrder](ctx, c, "/api/sales-orders", opts)
}

func (c *Client) GetSalesOrder(ctx context.Context, id string) (model.SalesOrder, error) {
	return get[model.SalesOrder](ctx, c, "/api/sales-orders", id)
}

func (c *Client) CreateSalesOrder(ctx context.Context, req model.CreateSalesOrderRequest) (model.SalesOrder, error) {
	return create[model.SalesOrder](ctx, c, "/api/sales-orders", &req)
}

func (c *Client) UpdateSalesOrder(ctx context.Context, id string, req model.UpdateSalesOrderRequest) (model.SalesOrder, error) {
	return update[model.SalesOrder](ctx, c, "/api/sales-orders", id, &req)
}

func (c *Client) DeleteSalesOrder(ctx context.Context, id string) error {
	return remove(ctx, c, "/api/sales-orders", id)
}

// Customers

func (c *Client) ListCustomers(ctx context.Context, opts model.ListOptions) (ListResult[model.Customer], error) {
	return list[model.Customer](ctx, c, "/api/customers", opts)
}

func (c *Client) GetCustomer(ctx context.Context, id string) (model.Customer, error) {
	return get[model.Customer](ctx, c, "/api/customers", id)
}

func (c *Client) CreateCustomer(ctx context.Context, req model.CreateCustomerRequest) (model.Customer, error) {
	return create[model.Customer](ctx, c, "/api/customers", &req)
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, req model.UpdateCustomerRequest) (model.Customer, error) {
	return update[model.Customer](ctx, c, "/api/customers", id, &req)
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return remove(ctx, c, "/api/customers", id)
}

// Users

func (c *Client) ListUsers(ctx context.Context, opts model.ListOptions) (ListResult[model.User], error) {
	return list[model.User](ctx, c, "/api/users", opts)
}

func (c *Client) GetUser(ctx context.Context, id string) (model.User, error) {
	return get[model.User](ctx, c, "/api/users", id)
}

func (c *Client) CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	return create[model.User](ctx, c, "/api/users", &req)
}

func (c *Client) UpdateUser(ctx context.Context, id string, req model.UpdateUserRequest) (model.User, error) {
	return update[model.User](ctx, c, "/api/users", id, &req)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return remove(ctx, c, "/api/users", id)
}

// SignIn authenticates local credentials against the backend. The returned
// user carries a bearer token for subsequent calls.
func (c *Client) SignIn(ctx context.Context, req model.SignInRequest) (model.User, error) {
	var out model.User
	if err := req.Validate(); err != nil {
		return out, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid sign-in request")
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/signin", nil, req, &out); err != nil {
		return out, err
	}
	return out, nil
}

// Register completes the account for the authenticated (but unregistered)
// sales person. The bearer token in the context identifies the profile.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	var out model.User
	if err := req.Validate(); err != nil {
		return out, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid register request")
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/register", nil, req, &out); err != nil {
		return out, err
	}
	return out, nil
}

// ExchangeSSOCode redeems a short-lived SSO exchange code for the callback
// payload shape. The exchange endpoint returns the payload directly rather
// than nesting it inside another envelope.
func (c *Client) ExchangeSSOCode(ctx context.Context, code string) (*domainauth.CallbackPayload, error) {
	if code == "" {
		return nil, apperrors.Validation("exchange code is required")
	}

	body, err := c.GetRaw(ctx, "/api/auth/sso/exchange?code="+url.QueryEscape(code))
	if err != nil {
		return nil, err
	}

	// Re-encode the generic value into the typed payload shape.
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal exchange response: %w", err)
	}
	var payload domainauth.CallbackPayload
	if unmarshalErr := json.Unmarshal(raw, &payload); unmarshalErr != nil {
		return nil, apperrors.Wrap(unmarshalErr, apperrors.ErrCodeUpstream, "unexpected exchange response shape")
	}
	return &payload, nil
}

// String formats a list result for logs.
func (r ListResult[T]) String() string {
	return fmt.Sprintf("items=%d total=%d", len(r.Items), r.Total)
}
