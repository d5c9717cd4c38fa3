package veo

import "context"

// MockGenerator records calls and returns canned results.
type MockGenerator struct {
	Path string
	Err  error

	Calls       int
	LastScript  string
	LastContext context.Context
}

var _ Generator = (*MockGenerator)(nil)

func (m *MockGenerator) Generate(ctx context.Context, fortuneScript string) (string, error) {
	m.Calls++
	m.LastScript = fortuneScript
	m.LastContext = ctx
	if m.Err != nil {
		return "", m.Err
	}
	return m.Path, nil
}
