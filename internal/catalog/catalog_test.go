package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_Validate(t *testing.T) {
	ok := Product{ID: "p1", Name: "Chair", Price: decimal.NewFromInt(10), Stock: 1}

	tests := []struct {
		name    string
		mutate  func(p *Product)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *Product) {}},
		{name: "free is fine", mutate: func(p *Product) { p.Price = decimal.Zero }},
		{name: "empty id", mutate: func(p *Product) { p.ID = "" }, wantErr: true},
		{name: "empty name", mutate: func(p *Product) { p.Name = "" }, wantErr: true},
		{name: "negative price", mutate: func(p *Product) { p.Price = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "negative stock", mutate: func(p *Product) { p.Stock = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ok
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidProduct)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestProduct_HasColor(t *testing.T) {
	p := Product{Colors: []string{"gray", "navy"}}
	assert.True(t, p.HasColor(""))
	assert.True(t, p.HasColor("navy"))
	assert.False(t, p.HasColor("red"))
	assert.False(t, Product{}.HasColor("red"))
}

func TestSeed_AllValid(t *testing.T) {
	m, err := NewMemory(Seed(), 0)
	require.NoError(t, err)

	all, err := m.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, all, len(Seed()))
}

func TestNewMemory_RejectsInvalid(t *testing.T) {
	_, err := NewMemory([]Product{{ID: "x"}}, 0)
	require.ErrorIs(t, err, ErrInvalidProduct)
}

func TestMemory_GetAndNotFound(t *testing.T) {
	m, err := NewMemory(Seed(), 0)
	require.NoError(t, err)
	ctx := context.Background()

	p, err := m.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Modern Sofa", p.Name)
	assert.True(t, decimal.RequireFromString("899.99").Equal(p.Price))

	_, err = m.Get(ctx, "nope")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemory_ListFilters(t *testing.T) {
	m, err := NewMemory(Seed(), 0)
	require.NoError(t, err)
	ctx := context.Background()

	office, err := m.List(ctx, Filter{Category: "OFFICE"})
	require.NoError(t, err)
	require.Len(t, office, 2)
	assert.Equal(t, "6", office[0].ID)
	assert.Equal(t, "7", office[1].ID)

	inStock, err := m.List(ctx, Filter{Category: "office", InStock: true})
	require.NoError(t, err)
	require.Len(t, inStock, 1)
	assert.Equal(t, "6", inStock[0].ID)

	byName, err := m.List(ctx, Filter{Query: "sofa"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "1", byName[0].ID)
}

func TestMemory_SetStock(t *testing.T) {
	m, err := NewMemory(Seed(), 0)
	require.NoError(t, err)

	require.NoError(t, m.SetStock("1", 2))
	p, err := m.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)

	require.ErrorIs(t, m.SetStock("nope", 1), ErrProductNotFound)
	require.ErrorIs(t, m.SetStock("1", -3), ErrInvalidProduct)
}

func TestMemory_LatencyHonoursContext(t *testing.T) {
	m, err := NewMemory(Seed(), time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = m.Get(ctx, "1")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
