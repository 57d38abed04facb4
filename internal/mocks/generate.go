// Package mocks provides mock implementations for testing the auth ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the storage-facing interfaces. The identity provider double is hand-written
// (see identity_provider.go) since its tests only need canned behavior.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	backend := mocks.NewMockDirectoryBackend(ctrl)
//	backend.EXPECT().Get(gomock.Any(), steamID).Return(record, nil)
package mocks

// Generate mock for DirectoryBackend: List, Get, Add, Update, Remove, Count, Name.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=directory_backend_mock.go github.com/gamevault/authcore/internal/ports DirectoryBackend

// Generate mock for ProfileProvider: Summaries.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=profile_provider_mock.go github.com/gamevault/authcore/internal/ports ProfileProvider
