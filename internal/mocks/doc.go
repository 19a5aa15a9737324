// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout
// the application, facilitating consistent and DRY testing across the
// codebase. Instead of defining inline mocks in individual test files,
// these standardized mock implementations can be reused.
//
// Each mock exposes optional function fields overriding single methods,
// backed by a simple in-memory default implementation:
//
//	cardStore := mocks.NewMockCardStore()
//	cardStore.ListFn = func(ctx context.Context, owner string) ([]*domain.Card, error) {
//	    return nil, store.ErrUnavailable
//	}
package mocks
