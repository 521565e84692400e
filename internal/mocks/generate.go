// Package mocks provides mock implementations for testing the auth plumbing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockStore := mocks.NewMockSessionStore(ctrl)
//	mockStore.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
package mocks

// Generate mock for SessionStore interface from internal/ports package.
// This creates MockSessionStore with methods for all SessionStore interface methods:
// Save, Get, Delete, SaveIDToken, GetIDToken
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/salesops/so-ui-api/internal/ports SessionStore

// Generate mock for SSOGateway interface from internal/ports package.
// This creates MockSSOGateway with methods for all SSOGateway interface methods:
// AuthCodeURL, DecodeInline, ExchangeCode, VerifyIDToken
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=sso_gateway_mock.go github.com/salesops/so-ui-api/internal/ports SSOGateway

// Generate mock for TokenSource interface from internal/ports package.
// This creates MockTokenSource with methods for all TokenSource interface methods:
// BearerToken
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_source_mock.go github.com/salesops/so-ui-api/internal/ports TokenSource
